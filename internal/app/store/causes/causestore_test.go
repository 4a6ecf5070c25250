package causestore

import (
	"sync"
	"testing"

	"github.com/hopecharity/hopehub/internal/app/system/query"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"github.com/hopecharity/hopehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newCause(goal float64) models.Cause {
	return models.Cause{
		Title:       "Clean Water",
		Description: "Wells for the northern district",
		GoalAmount:  goal,
		Image:       "https://img.example/well.png",
		CreatedBy:   primitive.NewObjectID(),
	}
}

func TestCreateZeroesRaised(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	c := newCause(1000)
	c.RaisedAmount = 500 // must be ignored
	created, err := s.Create(ctx, c)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.RaisedAmount != 0 {
		t.Errorf("raisedAmount = %v, want 0", created.RaisedAmount)
	}
	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RaisedAmount != 0 {
		t.Errorf("stored raisedAmount = %v, want 0", got.RaisedAmount)
	}
}

func TestIncRaisedGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	c, err := s.Create(ctx, newCause(100))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if n, err := s.IncRaised(ctx, c.ID, 60); err != nil || n != 1 {
		t.Fatalf("IncRaised(60) = (%d, %v), want (1, nil)", n, err)
	}
	// 60 + 50 would overshoot the goal of 100.
	if n, err := s.IncRaised(ctx, c.ID, 50); err != nil || n != 0 {
		t.Fatalf("IncRaised(50) = (%d, %v), want (0, nil)", n, err)
	}
	// Exactly reaching the goal is allowed.
	if n, err := s.IncRaised(ctx, c.ID, 40); err != nil || n != 1 {
		t.Fatalf("IncRaised(40) = (%d, %v), want (1, nil)", n, err)
	}

	got, err := s.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RaisedAmount != 100 {
		t.Errorf("raisedAmount = %v, want 100", got.RaisedAmount)
	}

	if n, err := s.DecRaised(ctx, c.ID, 40); err != nil || n != 1 {
		t.Fatalf("DecRaised = (%d, %v), want (1, nil)", n, err)
	}
	got, _ = s.GetByID(ctx, c.ID)
	if got.RaisedAmount != 60 {
		t.Errorf("raisedAmount after dec = %v, want 60", got.RaisedAmount)
	}
}

func TestIncRaisedConcurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	c, err := s.Create(ctx, newCause(100))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Ten racing donations of 30 against a goal of 100: at most three
	// can land.
	var wg sync.WaitGroup
	results := make(chan int64, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.IncRaised(ctx, c.ID, 30)
			if err != nil {
				t.Errorf("IncRaised: %v", err)
				return
			}
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	var landed int64
	for n := range results {
		landed += n
	}
	if landed != 3 {
		t.Errorf("landed donations = %d, want 3", landed)
	}
	got, err := s.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RaisedAmount > got.GoalAmount {
		t.Errorf("raised %v exceeds goal %v", got.RaisedAmount, got.GoalAmount)
	}
}

func TestUpdateFieldsGoalGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	c, err := s.Create(ctx, newCause(100))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.IncRaised(ctx, c.ID, 80); err != nil {
		t.Fatalf("IncRaised: %v", err)
	}

	lowGoal := 50.0
	if n, err := s.UpdateFields(ctx, c.ID, Update{GoalAmount: &lowGoal}); err != nil || n != 0 {
		t.Fatalf("lowering goal below raised = (%d, %v), want (0, nil)", n, err)
	}
	okGoal := 200.0
	title := "Clean Water Phase 2"
	if n, err := s.UpdateFields(ctx, c.ID, Update{GoalAmount: &okGoal, Title: &title}); err != nil || n != 1 {
		t.Fatalf("raising goal = (%d, %v), want (1, nil)", n, err)
	}

	got, err := s.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.GoalAmount != 200 || got.Title != title {
		t.Errorf("cause after update = %+v", got)
	}
}

func TestGetPopulated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	admin := models.Profile{
		ID:    primitive.NewObjectID(),
		Name:  models.PersonName{FirstName: "Admin", LastName: "One"},
		Email: "admin@example.com",
		User:  primitive.NewObjectID(),
	}
	if _, err := db.Collection("admins").InsertOne(ctx, admin); err != nil {
		t.Fatalf("insert admin: %v", err)
	}

	c := newCause(100)
	c.CreatedBy = admin.ID
	created, err := s.Create(ctx, c)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	pc, err := s.GetPopulated(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPopulated: %v", err)
	}
	if pc.ID != created.ID || pc.Title != created.Title || pc.GoalAmount != created.GoalAmount {
		t.Errorf("base fields = %s/%q/%v, want %s/%q/%v",
			pc.ID.Hex(), pc.Title, pc.GoalAmount, created.ID.Hex(), created.Title, created.GoalAmount)
	}
	if pc.Cause.CreatedBy != admin.ID {
		t.Errorf("base createdBy = %s, want %s", pc.Cause.CreatedBy.Hex(), admin.ID.Hex())
	}
	if pc.CreatedBy == nil || pc.CreatedBy.Email != admin.Email {
		t.Errorf("populated createdBy = %+v, want admin profile", pc.CreatedBy)
	}

	if _, err := s.GetPopulated(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("missing cause err = %v, want ErrNoDocuments", err)
	}
}

func TestListPopulated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	for i := 0; i < 3; i++ {
		if _, err := s.Create(ctx, newCause(float64(100 * (i + 1)))); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	cl := query.Options{Page: 1, Limit: 2}.Build([]string{"title"})
	page, err := s.ListPopulated(ctx, cl)
	if err != nil {
		t.Fatalf("ListPopulated: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	total, err := s.Count(ctx, cl.Where)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}
