package user

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reserve-backend/domain"
	"reserve-backend/entities"
	"reserve-backend/internal/testutil"
	"reserve-backend/pkg/jwt"
)

type fakeStorage struct {
	uploaded []string
	updated  []string
}

func (f *fakeStorage) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	key := folder + "/" + fileName + ".png"
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeStorage) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	f.updated = append(f.updated, objectKey)
	return objectKey, nil
}

func (f *fakeStorage) DeleteFile(string) error { return nil }

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

func (f *fakeStorage) GetObjectKeyFromLink(link string) string {
	return link[len("https://cdn.test/"):]
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendMail(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}

type userFixture struct {
	db      *gorm.DB
	svc     *userService
	jwt     jwt.JWTService
	storage *fakeStorage
	mailer  *fakeMailer
	now     time.Time
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &userFixture{
		db:      db,
		jwt:     jwt.NewJWTServiceWithSecret("test-secret"),
		storage: &fakeStorage{},
		mailer:  &fakeMailer{},
		now:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewUserService(NewUserRepository(db), f.jwt, f.storage, f.mailer).(*userService)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func registerRequest(role, email string) domain.RegisterRequest {
	return domain.RegisterRequest{
		Name:     "Asha",
		Email:    email,
		Password: "s3cret-pass",
		Role:     role,
		Phone:    "+91 98765 43210",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	donor, err := f.svc.Register(ctx, registerRequest(domain.RoleDonor, "Donor@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, "donor@example.com", donor.Email)
	assert.Equal(t, domain.VerificationVerified, donor.VerificationStatus)

	_, err = f.svc.Register(ctx, registerRequest(domain.RoleNGO, "donor@example.com"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)

	res, err := f.svc.Login(ctx, domain.LoginRequest{Email: "donor@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDonor, res.Role)

	id, role, err := f.jwt.GetUserIDByToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, donor.ID, id)
	assert.Equal(t, domain.RoleDonor, role)

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "donor@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister_Rules(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	recipient, err := f.svc.Register(ctx, registerRequest(domain.RoleRecipient, "home@example.com"))
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationPending, recipient.VerificationStatus)
	assert.Equal(t, domain.DefaultRecipientPeopleCount, recipient.PeopleCount)

	_, err = f.svc.Register(ctx, registerRequest(domain.RoleAdmin, "root@example.com"))
	assert.ErrorIs(t, err, domain.ErrRegistrationRoleNotAllowed)

	short := registerRequest(domain.RoleDonor, "short@example.com")
	short.Phone = "12345"
	_, err = f.svc.Register(ctx, short)
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)

	lat := 13.0
	half := registerRequest(domain.RoleDonor, "half@example.com")
	half.Latitude = &lat
	_, err = f.svc.Register(ctx, half)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

func TestLogin_AccountGates(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	ngo, err := f.svc.Register(ctx, registerRequest(domain.RoleNGO, "ngo@example.com"))
	require.NoError(t, err)
	creds := domain.LoginRequest{Email: "ngo@example.com", Password: "s3cret-pass"}

	_, err = f.svc.Login(ctx, creds)
	assert.ErrorIs(t, err, domain.ErrAccountPending)

	_, err = f.svc.VerifyUser(ctx, ngo.ID, domain.VerifyUserRequest{Approved: false})
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, creds)
	assert.ErrorIs(t, err, domain.ErrAccountRejected)

	_, err = f.svc.VerifyUser(ctx, ngo.ID, domain.VerifyUserRequest{Approved: true})
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, creds)
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateAccountStatus(ctx, ngo.ID, domain.UpdateAccountStatusRequest{Status: domain.AccountDisabled}))
	_, err = f.svc.Login(ctx, creds)
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVerifyUser_SendsMailBestEffort(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	f.mailer.err = errors.New("smtp down")

	ngo, err := f.svc.Register(ctx, registerRequest(domain.RoleNGO, "ngo@example.com"))
	require.NoError(t, err)

	verified, err := f.svc.VerifyUser(ctx, ngo.ID, domain.VerifyUserRequest{Approved: true})
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationVerified, verified.VerificationStatus)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "ngo@example.com", f.mailer.sent[0].to)
	assert.Equal(t, domain.MessageVerificationMailTitle, f.mailer.sent[0].subject)
	assert.Contains(t, f.mailer.sent[0].body, "approved")
}

func TestUpdateAccountStatus_Errors(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	err := f.svc.UpdateAccountStatus(ctx, uuid.NewString(), domain.UpdateAccountStatusRequest{Status: domain.AccountDisabled})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = f.svc.UpdateAccountStatus(ctx, uuid.NewString(), domain.UpdateAccountStatusRequest{Status: "BANNED"})
	assert.ErrorIs(t, err, domain.ErrInvalidAccountStatus)
}

func (f *userFixture) otpCode(t *testing.T, phone string) string {
	t.Helper()
	var otp entities.Otp
	require.NoError(t, f.db.Where("phone = ?", phone).First(&otp).Error)
	return otp.Code
}

func TestOtp_SendAndVerify(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, f.db, domain.RoleDonor, "d", func(u *entities.User) { u.Phone = "9876543210" })

	require.NoError(t, f.svc.SendOtp(ctx, domain.SendOtpRequest{Phone: "9876543210"}))
	first := f.otpCode(t, "9876543210")
	assert.Len(t, first, domain.OtpLength)

	// A second request replaces the first code.
	require.NoError(t, f.svc.SendOtp(ctx, domain.SendOtpRequest{Phone: "9876543210"}))
	var count int64
	require.NoError(t, f.db.Model(&entities.Otp{}).Where("phone = ?", "9876543210").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	code := f.otpCode(t, "9876543210")
	require.NoError(t, f.svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Phone: "9876543210", Code: code}))

	var stored entities.User
	require.NoError(t, f.db.Where("id = ?", donor.ID).First(&stored).Error)
	assert.True(t, stored.PhoneVerified)

	err := f.svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Phone: "9876543210", Code: code})
	assert.ErrorIs(t, err, domain.ErrOtpNotFound)
}

func TestOtp_AttemptLimit(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	phone := "9123456780"

	require.NoError(t, f.svc.SendOtp(ctx, domain.SendOtpRequest{Phone: phone}))
	code := f.otpCode(t, phone)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	for i := 0; i < domain.OtpMaxAttempts; i++ {
		err := f.svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Phone: phone, Code: wrong})
		assert.ErrorIs(t, err, domain.ErrOtpInvalid)
	}

	err := f.svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Phone: phone, Code: code})
	assert.ErrorIs(t, err, domain.ErrOtpTooManyAttempts)

	err = f.svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Phone: phone, Code: code})
	assert.ErrorIs(t, err, domain.ErrOtpNotFound)
}

func TestOtp_ConcurrentWrongGuessesRespectLimit(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	phone := "9123456780"

	require.NoError(t, f.svc.SendOtp(ctx, domain.SendOtpRequest{Phone: phone}))
	code := f.otpCode(t, phone)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	const guesses = 20
	errs := make([]error, guesses)
	var wg sync.WaitGroup
	for i := 0; i < guesses; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Phone: phone, Code: wrong})
		}(i)
	}
	wg.Wait()

	invalid := 0
	for _, err := range errs {
		require.Error(t, err)
		if errors.Is(err, domain.ErrOtpInvalid) {
			invalid++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrOtpTooManyAttempts) || errors.Is(err, domain.ErrOtpNotFound), err.Error())
	}
	assert.LessOrEqual(t, invalid, domain.OtpMaxAttempts)

	err := f.svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Phone: phone, Code: code})
	assert.Error(t, err)

	var stored int64
	require.NoError(t, f.db.Model(&entities.User{}).Where("phone = ? AND phone_verified = ?", phone, true).Count(&stored).Error)
	assert.Zero(t, stored)
}

func TestOtp_Expiry(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	phone := "9123456780"

	require.NoError(t, f.svc.SendOtp(ctx, domain.SendOtpRequest{Phone: phone}))
	code := f.otpCode(t, phone)

	f.now = f.now.Add(domain.OtpTTL + time.Second)
	err := f.svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Phone: phone, Code: code})
	assert.ErrorIs(t, err, domain.ErrOtpExpired)

	err = f.svc.SendOtp(ctx, domain.SendOtpRequest{Phone: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
}

func TestUpdateProfileAndUploads(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, f.db, domain.RoleNGO, "ngo", func(u *entities.User) { u.PhoneVerified = true })

	lat, lng := 13.08, 80.27
	updated, err := f.svc.Update(ctx, u.ID.String(), domain.UpdateUserRequest{
		Organization: "Helping Hands",
		Phone:        "9000000001",
		Latitude:     &lat,
		Longitude:    &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, "Helping Hands", updated.Organization)
	assert.False(t, updated.PhoneVerified, "changing the phone clears verification")
	require.NotNil(t, updated.Location)
	assert.Equal(t, domain.Location{Lat: lat, Lng: lng}, *updated.Location)

	withPhoto, err := f.svc.UploadProfilePhoto(ctx, u.ID.String(), &multipart.FileHeader{Filename: "me.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/profile-photos/"+u.ID.String()+".png", withPhoto.ProfilePhotoURL)

	_, err = f.svc.UploadProfilePhoto(ctx, u.ID.String(), &multipart.FileHeader{Filename: "me2.png"})
	require.NoError(t, err)
	assert.Equal(t, []string{"profile-photos/" + u.ID.String() + ".png"}, f.storage.updated)

	withDoc, err := f.svc.UploadDocument(ctx, u.ID.String(), &multipart.FileHeader{Filename: "license.pdf"})
	require.NoError(t, err)
	assert.NotEmpty(t, withDoc.DocumentURL)

	actor, err := f.svc.GetActor(ctx, u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Helping Hands", actor.Name)
	assert.Equal(t, withPhoto.ProfilePhotoURL, actor.ProfilePhotoURL)
}

func TestListUsersAndStats(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, f.db, domain.RoleDonor, "d")
	testutil.CreateUser(t, f.db, domain.RoleNGO, "n1")
	testutil.CreateUser(t, f.db, domain.RoleNGO, "n2", func(u *entities.User) { u.VerificationStatus = domain.VerificationPending })

	require.NoError(t, f.db.Create(&entities.FoodPost{
		ID: uuid.New(), DonorID: donor.ID, DonorName: "d", Status: domain.StatusAvailable, Latitude: 1, Longitude: 1,
	}).Error)

	ngos, page, err := f.svc.ListUsers(ctx, domain.RoleNGO, 1, 1)
	require.NoError(t, err)
	assert.Len(t, ngos, 1)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, int64(2), page.TotalPages)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.UsersByRole[domain.RoleNGO])
	assert.Equal(t, int64(1), stats.UsersByRole[domain.RoleDonor])
	assert.Equal(t, int64(1), stats.PostsByStatus[domain.StatusAvailable])
	assert.Equal(t, int64(1), stats.PendingUsers)
	assert.Zero(t, stats.Deliveries)
}
