package donationstore

import (
	"testing"

	"github.com/hopecharity/hopehub/internal/app/system/query"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"github.com/hopecharity/hopehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateAndGetPopulated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	donor := models.Profile{
		ID:    primitive.NewObjectID(),
		Name:  models.PersonName{FirstName: "Amina", LastName: "Khan"},
		Email: "amina@example.com",
		User:  primitive.NewObjectID(),
	}
	cause := models.Cause{
		ID:         primitive.NewObjectID(),
		Title:      "Winter Relief",
		GoalAmount: 5000,
		CreatedBy:  primitive.NewObjectID(),
	}
	if _, err := db.Collection("donors").InsertOne(ctx, donor); err != nil {
		t.Fatalf("insert donor: %v", err)
	}
	if _, err := db.Collection("causes").InsertOne(ctx, cause); err != nil {
		t.Fatalf("insert cause: %v", err)
	}

	d, err := s.Create(ctx, models.Donation{Amount: 250, Donor: donor.ID, Cause: cause.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	pd, err := s.GetPopulated(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetPopulated: %v", err)
	}
	if pd.Amount != 250 {
		t.Errorf("amount = %v, want 250", pd.Amount)
	}
	if pd.Donor == nil || pd.Donor.Email != donor.Email {
		t.Errorf("populated donor = %+v", pd.Donor)
	}
	if pd.Cause == nil || pd.Cause.Title != cause.Title {
		t.Errorf("populated cause = %+v", pd.Cause)
	}

	if _, err := s.GetPopulated(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("missing donation err = %v, want ErrNoDocuments", err)
	}
}

func TestFindAndDeleteByCause(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	causeA := primitive.NewObjectID()
	causeB := primitive.NewObjectID()
	for _, cause := range []primitive.ObjectID{causeA, causeA, causeB} {
		if _, err := s.Create(ctx, models.Donation{
			Amount: 100,
			Donor:  primitive.NewObjectID(),
			Cause:  cause,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	found, err := s.FindByCause(ctx, causeA)
	if err != nil {
		t.Fatalf("FindByCause: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("FindByCause returned %d, want 2", len(found))
	}

	sum, err := s.SumByCause(ctx, causeA)
	if err != nil {
		t.Fatalf("SumByCause: %v", err)
	}
	if sum != 200 {
		t.Errorf("sum = %v, want 200", sum)
	}

	n, err := s.DeleteByCause(ctx, causeA)
	if err != nil {
		t.Fatalf("DeleteByCause: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
	remaining, err := s.Count(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}
}

func TestListPopulatedFilterByDonor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	donorA := primitive.NewObjectID()
	donorB := primitive.NewObjectID()
	if _, err := db.Collection("donors").InsertOne(ctx, models.Profile{
		ID:    donorA,
		Email: "donora@example.com",
		User:  primitive.NewObjectID(),
	}); err != nil {
		t.Fatalf("insert donor: %v", err)
	}
	for _, donor := range []primitive.ObjectID{donorA, donorA, donorB} {
		if _, err := s.Create(ctx, models.Donation{
			Amount: 50,
			Donor:  donor,
			Cause:  primitive.NewObjectID(),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	cl := query.Options{
		Filters: map[string]string{"donor": donorA.Hex()},
		Page:    1,
		Limit:   10,
	}.Build(nil)
	page, err := s.ListPopulated(ctx, cl)
	if err != nil {
		t.Fatalf("ListPopulated: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	for _, pd := range page {
		if pd.Donor == nil || pd.Donor.ID != donorA {
			t.Errorf("donation %s joined donor = %+v, want %s", pd.ID.Hex(), pd.Donor, donorA.Hex())
		}
	}
}
