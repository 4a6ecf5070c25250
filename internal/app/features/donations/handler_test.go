// internal/app/features/donations/handler_test.go
package donations_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hopecharity/hopehub/internal/app/features/donations"
	causestore "github.com/hopecharity/hopehub/internal/app/store/causes"
	donationstore "github.com/hopecharity/hopehub/internal/app/store/donations"
	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"github.com/hopecharity/hopehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	router    http.Handler
	tm        *auth.Manager
	users     *userstore.Store
	donors    *profilestore.Store
	causes    *causestore.Store
	donations *donationstore.Store
}

func newFixture(t *testing.T) fixture {
	db := testutil.SetupTestDB(t)
	wr := respond.NewWriter(zap.NewNop(), true)
	tm := auth.NewManager("s", "rs", time.Minute, time.Hour, 10*time.Minute)
	f := fixture{
		tm:        tm,
		users:     userstore.New(db, bcrypt.MinCost),
		donors:    profilestore.New(db, models.ProfileDonor),
		causes:    causestore.New(db),
		donations: donationstore.New(db),
	}
	h := donations.NewHandler(db, zap.NewNop(), wr, tm, f.donations, f.causes, f.donors)
	f.router = donations.Routes(h, tm)
	return f
}

// seedDonor creates a donor account with profile and a bearer/cookie
// pair for authenticated calls.
func seedDonor(t *testing.T, f fixture, email string) (models.Profile, string, *http.Cookie) {
	t.Helper()
	ctx := testutil.TestContext(t)

	u, err := f.users.Create(ctx, models.User{
		Name:  models.PersonName{FirstName: "Donor", LastName: "One"},
		Email: email,
	}, "secret123")
	if err != nil {
		t.Fatalf("seed donor user: %v", err)
	}
	p, err := f.donors.Create(ctx, models.Profile{Name: u.Name, Email: u.Email, User: u.ID})
	if err != nil {
		t.Fatalf("seed donor profile: %v", err)
	}
	if err := f.users.SetProfileRef(ctx, u.ID, models.ProfileDonor, p.ID); err != nil {
		t.Fatalf("seed ref: %v", err)
	}

	access, err := f.tm.IssueAccess(&u)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	refresh, err := f.tm.IssueRefresh(&u)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	return p, access, &http.Cookie{Name: auth.CookieName, Value: refresh}
}

// seedAdmin creates an admin account and a bearer/cookie pair for
// endpoints that verify the token pair.
func seedAdmin(t *testing.T, f fixture, email string) (string, *http.Cookie) {
	t.Helper()
	u, err := f.users.Create(testutil.TestContext(t), models.User{
		Name:  models.PersonName{FirstName: "Admin", LastName: "One"},
		Email: email,
		Role:  models.RoleAdmin,
	}, "secret123")
	if err != nil {
		t.Fatalf("seed admin user: %v", err)
	}
	access, err := f.tm.IssueAccess(&u)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	refresh, err := f.tm.IssueRefresh(&u)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	return access, &http.Cookie{Name: auth.CookieName, Value: refresh}
}

func seedCause(t *testing.T, f fixture, goal float64) models.Cause {
	t.Helper()
	c, err := f.causes.Create(testutil.TestContext(t), models.Cause{
		Title:      "School Meals",
		GoalAmount: goal,
		CreatedBy:  primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("seed cause: %v", err)
	}
	return c
}

func donate(t *testing.T, f fixture, access string, cookie *http.Cookie, cause primitive.ObjectID, amount float64) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/donate", map[string]any{
		"amount": amount,
		"cause":  cause.Hex(),
	})
	req.Header.Set("Authorization", "Bearer "+access)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestDonate(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.TestContext(t)
	donor, access, cookie := seedDonor(t, f, "donor@example.com")
	cause := seedCause(t, f, 1000)

	rec := donate(t, f, access, cookie, cause.ID, 250)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	var out struct {
		Amount float64 `json:"amount"`
		Donor  *struct {
			Email string `json:"email"`
		} `json:"donor"`
		Cause *struct {
			Title string `json:"title"`
		} `json:"cause"`
	}
	testutil.DecodeData(t, env, &out)
	if out.Amount != 250 {
		t.Errorf("amount = %v", out.Amount)
	}
	if out.Donor == nil || out.Donor.Email != "donor@example.com" {
		t.Errorf("donor = %+v, want populated", out.Donor)
	}
	if out.Cause == nil || out.Cause.Title != "School Meals" {
		t.Errorf("cause = %+v, want populated", out.Cause)
	}

	gotCause, err := f.causes.GetByID(ctx, cause.ID)
	if err != nil {
		t.Fatalf("cause reload: %v", err)
	}
	if gotCause.RaisedAmount != 250 {
		t.Errorf("raisedAmount = %v, want 250", gotCause.RaisedAmount)
	}
	gotDonor, err := f.donors.GetByID(ctx, donor.ID)
	if err != nil {
		t.Fatalf("donor reload: %v", err)
	}
	if len(gotDonor.Donation) != 1 {
		t.Errorf("donor.donation = %v, want one entry", gotDonor.Donation)
	}

	// Raised total always equals the sum of stored donations.
	sum, err := f.donations.SumByCause(ctx, cause.ID)
	if err != nil {
		t.Fatalf("SumByCause: %v", err)
	}
	if sum != gotCause.RaisedAmount {
		t.Errorf("sum %v != raised %v", sum, gotCause.RaisedAmount)
	}
}

func TestDonateOverGoal(t *testing.T) {
	f := newFixture(t)
	_, access, cookie := seedDonor(t, f, "big@example.com")
	cause := seedCause(t, f, 100)

	if rec := donate(t, f, access, cookie, cause.ID, 80); rec.Code != http.StatusCreated {
		t.Fatalf("first donation status = %d", rec.Code)
	}
	rec := donate(t, f, access, cookie, cause.ID, 30)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("over-goal status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}

	// The refused donation must not leave a record behind.
	left, err := f.donations.FindByCause(testutil.TestContext(t), cause.ID)
	if err != nil {
		t.Fatalf("FindByCause: %v", err)
	}
	if len(left) != 1 {
		t.Errorf("donations = %d, want 1", len(left))
	}
}

func TestDonateUnknownCause(t *testing.T) {
	f := newFixture(t)
	_, access, cookie := seedDonor(t, f, "lost@example.com")

	rec := donate(t, f, access, cookie, primitive.NewObjectID(), 50)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestDonateRequiresDonorRole(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.TestContext(t)
	cause := seedCause(t, f, 100)

	admin, err := f.users.Create(ctx, models.User{
		Name:  models.PersonName{FirstName: "Admin"},
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}, "secret123")
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	access, _ := f.tm.IssueAccess(&admin)
	refresh, _ := f.tm.IssueRefresh(&admin)

	rec := donate(t, f, access, &http.Cookie{Name: auth.CookieName, Value: refresh}, cause.ID, 10)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("admin donate status = %d, want 401", rec.Code)
	}
}

func TestDeleteReversesDonation(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.TestContext(t)
	donor, access, cookie := seedDonor(t, f, "undo@example.com")
	cause := seedCause(t, f, 1000)

	rec := donate(t, f, access, cookie, cause.ID, 400)
	if rec.Code != http.StatusCreated {
		t.Fatalf("donate status = %d", rec.Code)
	}
	var out struct {
		ID string `json:"id"`
	}
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &out)

	// An admin without its refresh cookie is refused.
	adminAccess, adminCookie := seedAdmin(t, f, "mod@example.com")
	req := testutil.NewRequest(http.MethodDelete, "/"+out.ID)
	req.Header.Set("Authorization", "Bearer "+adminAccess)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("pairless delete status = %d, want 401", rec.Code)
	}

	req = testutil.NewRequest(http.MethodDelete, "/"+out.ID)
	req.Header.Set("Authorization", "Bearer "+adminAccess)
	req.AddCookie(adminCookie)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", rec.Code, rec.Body.String())
	}

	gotCause, err := f.causes.GetByID(ctx, cause.ID)
	if err != nil {
		t.Fatalf("cause reload: %v", err)
	}
	if gotCause.RaisedAmount != 0 {
		t.Errorf("raisedAmount = %v, want 0", gotCause.RaisedAmount)
	}
	gotDonor, err := f.donors.GetByID(ctx, donor.ID)
	if err != nil {
		t.Fatalf("donor reload: %v", err)
	}
	if len(gotDonor.Donation) != 0 {
		t.Errorf("donor.donation = %v, want empty", gotDonor.Donation)
	}

	// Donors cannot delete donations.
	req = testutil.WithUser(testutil.NewRequest(http.MethodDelete, "/"+out.ID), testutil.DonorUser())
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("donor delete status = %d, want 401", rec.Code)
	}
}
