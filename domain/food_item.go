package domain

const (
	FreshnessFresh    = "Fresh"
	FreshnessRisky    = "Risky"
	FreshnessNotFresh = "Not Fresh"
	FreshnessUnknown  = "Unknown"

	StorageRoomTemperature = "room_temperature"
	StorageHotPack         = "hot_pack"
	StorageFridge          = "fridge"

	ElapsedUnderOneHour  = "<1 hr"
	ElapsedOneToTwo      = "1-2 hrs"
	ElapsedTwoToFour     = "2-4 hrs"
	ElapsedFourToSix     = "4-6 hrs"
	ElapsedOverSixHours  = ">6 hrs"
	ElapsedBucketUnknown = ""
)

var (
	ErrGeminiProcessingFailed = kind(ErrExternalService, "gemini processing failed")
	ErrUnknownFreshness       = kind(ErrExternalService, "classifier returned an unknown freshness level")
)

type (
	// ItemDescriptor is everything the freshness classifier is allowed to see.
	ItemDescriptor struct {
		Name          string `json:"name"`
		Category      string `json:"category"`
		ElapsedBucket string `json:"elapsed_bucket"`
		Storage       string `json:"storage"`
		VisibleIssues bool   `json:"visible_issues"`
	}

	ClassifyFoodResponse struct {
		Freshness string `json:"freshness"`
		Donatable bool   `json:"donatable"`
	}

	GeminiResponse struct {
		Prediction string `json:"prediction"`
	}
)

// IsDonatable reports whether the freshness gate lets an item through.
func IsDonatable(freshness string) bool {
	return freshness != FreshnessRisky && freshness != FreshnessNotFresh
}
