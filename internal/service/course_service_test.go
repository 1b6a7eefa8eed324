package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
)

type courseFixture struct {
	svc     *CourseService
	users   *fakeUserRepo
	tutors  *fakeTutorRepo
	courses *fakeCourseRepo
}

func newCourseFixture() *courseFixture {
	users := newFakeUserRepo()
	tutors := newFakeTutorRepo()
	courses := newFakeCourseRepo(tutors)
	svc := NewCourseService(tutors, courses, events.NewInMemoryDispatcher())
	return &courseFixture{svc: svc, users: users, tutors: tutors, courses: courses}
}

func (f *courseFixture) addTutorUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "hash", FirstName: "Ana", LastName: "Silva", Role: domain.RoleTutor}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	profile := &domain.TutorProfile{UserID: user.ID, Bio: "bio"}
	if err := f.tutors.Create(context.Background(), profile); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return user
}

func courseInput() CourseInput {
	return CourseInput{
		Title:           "Linear Algebra",
		Description:     "Vectors and matrices",
		Price:           9900,
		DurationMinutes: 60,
		Category:        "math",
		Difficulty:      domain.DifficultyIntermediate,
	}
}

func TestCreateCourse(t *testing.T) {
	f := newCourseFixture()
	owner := f.addTutorUser(t, "tutor@example.com")

	course, err := f.svc.Create(context.Background(), owner.ID, courseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if course.ID == "" {
		t.Fatal("expected assigned course id")
	}
	if !course.IsActive {
		t.Fatal("new courses must be active")
	}
}

func TestCreateCourseRequiresProfile(t *testing.T) {
	f := newCourseFixture()
	user := &domain.User{Email: "noprofile@example.com", Role: domain.RoleTutor}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, err := f.svc.Create(context.Background(), user.ID, courseInput())
	assertDomainError(t, err, http.StatusNotFound, "tutor profile not found")
}

func TestCreateCourseInvalidDifficulty(t *testing.T) {
	f := newCourseFixture()
	owner := f.addTutorUser(t, "tutor@example.com")

	input := courseInput()
	input.Difficulty = "expert"
	_, err := f.svc.Create(context.Background(), owner.ID, input)
	assertDomainError(t, err, http.StatusBadRequest, "")
}

func TestUpdateCourseSparsePatch(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	owner := f.addTutorUser(t, "tutor@example.com")
	course, err := f.svc.Create(ctx, owner.ID, courseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	price := int32(12900)
	updated, err := f.svc.Update(ctx, course.ID, owner.ID, domain.CoursePatch{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 12900 {
		t.Errorf("price = %d", updated.Price)
	}
	if updated.Title != "Linear Algebra" {
		t.Errorf("title = %q, absent fields must be untouched", updated.Title)
	}
}

func TestUpdateCourseEmptyPatch(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	owner := f.addTutorUser(t, "tutor@example.com")
	course, err := f.svc.Create(ctx, owner.ID, courseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.svc.Update(ctx, course.ID, owner.ID, domain.CoursePatch{})
	assertDomainError(t, err, http.StatusBadRequest, "no fields to update")
}

func TestUpdateCourseNonOwnerLooksLikeMissing(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	owner := f.addTutorUser(t, "owner@example.com")
	other := f.addTutorUser(t, "other@example.com")
	course, err := f.svc.Create(ctx, owner.ID, courseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "Hijacked"
	_, notOwnerErr := f.svc.Update(ctx, course.ID, other.ID, domain.CoursePatch{Title: &title})
	assertDomainError(t, notOwnerErr, http.StatusNotFound, "course not found")

	_, missingErr := f.svc.Update(ctx, "course-999", owner.ID, domain.CoursePatch{Title: &title})
	assertDomainError(t, missingErr, http.StatusNotFound, "course not found")

	if notOwnerErr.Error() != missingErr.Error() {
		t.Errorf("non-owner and missing must be indistinguishable: %q vs %q",
			notOwnerErr.Error(), missingErr.Error())
	}

	got, _ := f.courses.GetByID(ctx, course.ID)
	if got.Title != "Linear Algebra" {
		t.Errorf("title = %q, rejected update must not write", got.Title)
	}
}

func TestDeleteCourse(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	owner := f.addTutorUser(t, "owner@example.com")
	other := f.addTutorUser(t, "other@example.com")
	course, err := f.svc.Create(ctx, owner.ID, courseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = f.svc.Delete(ctx, course.ID, other.ID)
	assertDomainError(t, err, http.StatusNotFound, "course not found")

	if err := f.svc.Delete(ctx, course.ID, owner.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	_, err = f.svc.Get(ctx, course.ID)
	assertDomainError(t, err, http.StatusNotFound, "course not found")
}

func TestListMineIncludesInactive(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	owner := f.addTutorUser(t, "owner@example.com")
	course, err := f.svc.Create(ctx, owner.ID, courseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	inactive := false
	if _, err := f.svc.Update(ctx, course.ID, owner.ID, domain.CoursePatch{IsActive: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	active, err := f.svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("public listing shows %d courses, want 0", len(active))
	}

	mine, err := f.svc.ListMine(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("owner listing shows %d courses, want 1", len(mine))
	}
}
