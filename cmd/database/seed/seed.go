package seed

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reserve-backend/domain"
	"reserve-backend/entities"
)

type Options struct {
	AdminEmail    string
	AdminPassword string
}

func float(v float64) *float64 { return &v }

// recipients are the homes shown to NGOs on a fresh install.
var recipients = []entities.User{
	{Name: "Little Stars Orphanage", Email: "littlestars@reserve.local", Address: "Anna Nagar, Chennai", Latitude: float(13.0850), Longitude: float(80.2101), PeopleCount: 45},
	{Name: "Sunset Elder Care", Email: "sunset@reserve.local", Address: "Adyar, Chennai", Latitude: float(13.0012), Longitude: float(80.2565), PeopleCount: 30},
	{Name: "Hope Shelter", Email: "hope@reserve.local", Address: "T. Nagar, Chennai", Latitude: float(13.0418), Longitude: float(80.2341), PeopleCount: domain.DefaultRecipientPeopleCount},
}

// Seed inserts the admin account and sample recipients. Existing emails are left untouched.
func Seed(db *gorm.DB, opts Options) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entities.User{
		Name:               "ReServe Admin",
		Email:              opts.AdminEmail,
		Password:           string(hash),
		Role:               domain.RoleAdmin,
		AccountStatus:      domain.AccountActive,
		VerificationStatus: domain.VerificationVerified,
	}
	if err := firstOrCreate(db, admin); err != nil {
		return err
	}

	for _, r := range recipients {
		r.Role = domain.RoleRecipient
		r.Password = string(hash)
		r.AccountStatus = domain.AccountActive
		r.VerificationStatus = domain.VerificationVerified
		if err := firstOrCreate(db, r); err != nil {
			return err
		}
	}

	log.Info("database seeding complete")
	return nil
}

func firstOrCreate(db *gorm.DB, user entities.User) error {
	user.ID = uuid.New()
	res := db.Where(entities.User{Email: user.Email}).FirstOrCreate(&user)
	if res.Error != nil {
		log.Errorf("error seeding %s: %v", user.Email, res.Error)
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Infof("seeded %s user %s", user.Role, user.Email)
	}
	return nil
}
