// internal/app/features/users/handler_test.go
package users_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hopecharity/hopehub/internal/app/features/users"
	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/indexes"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"github.com/hopecharity/hopehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newFixture(t *testing.T) (*users.Handler, *auth.Manager, *mongo.Database) {
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	wr := respond.NewWriter(zap.NewNop(), true)
	h := users.NewHandler(db, zap.NewNop(), wr,
		userstore.New(db, bcrypt.MinCost),
		map[models.ProfileRole]*profilestore.Store{
			models.ProfileAdmin:     profilestore.New(db, models.ProfileAdmin),
			models.ProfileDonor:     profilestore.New(db, models.ProfileDonor),
			models.ProfileVolunteer: profilestore.New(db, models.ProfileVolunteer),
		},
		"https://img.example/default.png")
	tm := auth.NewManager("s", "rs", time.Minute, time.Hour, 10*time.Minute)
	return h, tm, db
}

func signupBody(email, role string) map[string]any {
	return map[string]any{
		"password":  "secret123",
		"name":      map[string]string{"firstName": "Amina", "lastName": "Khan"},
		"email":     email,
		"role":      role,
		"contactNo": "0170000000",
		"address":   "Dhaka",
	}
}

func TestCreateUserRoundTrip(t *testing.T) {
	h, tm, db := newFixture(t)
	ctx := testutil.TestContext(t)
	router := users.Routes(h, tm)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/create-user", signupBody("amina@example.com", "donor"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("envelope not successful: %s", env.Message)
	}

	// Back-references must agree in both directions.
	u, err := h.Users.GetByEmail(ctx, "amina@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.Role != models.RoleDonor {
		t.Errorf("role = %q, want donor", u.Role)
	}
	ref := u.ProfileID()
	if ref == nil {
		t.Fatal("user has no profile reference")
	}
	profile, err := h.Profiles[models.ProfileDonor].GetByID(ctx, *ref)
	if err != nil {
		t.Fatalf("profile lookup: %v", err)
	}
	if profile.User != u.ID {
		t.Errorf("profile.user = %s, want %s", profile.User.Hex(), u.ID.Hex())
	}
	if profile.ProfileImage != "https://img.example/default.png" {
		t.Errorf("profileImage = %q, want default", profile.ProfileImage)
	}

	// Profile landed in the donors collection only.
	for _, coll := range []string{"admins", "volunteers"} {
		n, err := db.Collection(coll).CountDocuments(ctx, map[string]any{})
		if err != nil {
			t.Fatalf("count %s: %v", coll, err)
		}
		if n != 0 {
			t.Errorf("%s has %d documents, want 0", coll, n)
		}
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	h, tm, _ := newFixture(t)
	router := users.Routes(h, tm)

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/create-user", signupBody("dup@example.com", "volunteer"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("attempt %d status = %d, want %d (body %s)", i, rec.Code, want, rec.Body.String())
		}
	}
}

func TestCreateUserValidation(t *testing.T) {
	h, tm, _ := newFixture(t)
	router := users.Routes(h, tm)

	body := signupBody("bad-email", "donor")
	body["password"] = "ab"
	delete(body, "address")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/create-user", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Success {
		t.Error("validation failure reported success")
	}
}

func TestMeReturnsProfile(t *testing.T) {
	h, tm, _ := newFixture(t)
	ctx := testutil.TestContext(t)
	router := users.Routes(h, tm)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/create-user", signupBody("me@example.com", "admin"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d", rec.Code)
	}

	u, err := h.Users.GetByEmail(ctx, "me@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	me := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/me"), testutil.TestUser{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Role:  u.Role,
	})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, me)

	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	var out struct {
		Email   string `json:"email"`
		Profile *struct {
			Email string `json:"email"`
		} `json:"profile"`
	}
	testutil.DecodeData(t, env, &out)
	if out.Email != "me@example.com" {
		t.Errorf("email = %q", out.Email)
	}
	if out.Profile == nil || out.Profile.Email != "me@example.com" {
		t.Errorf("profile = %+v, want attached admin profile", out.Profile)
	}
}

func TestRosterRequiresAdmin(t *testing.T) {
	h, tm, _ := newFixture(t)
	router := users.Routes(h, tm)

	req := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/"), testutil.DonorUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("donor roster status = %d, want 401", rec.Code)
	}

	req = testutil.WithUser(testutil.NewRequest(http.MethodGet, "/"), testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin roster status = %d, body %s", rec.Code, rec.Body.String())
	}
}
