package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

func TestExerciseHandler_List_UppercasesStatus(t *testing.T) {
	var got model.ExerciseStatus
	h := NewExerciseHandler(&mockExerciseService{
		listFunc: func(_ context.Context, status model.ExerciseStatus) ([]*model.Exercise, error) {
			got = status
			return nil, nil
		},
	})
	rec := serve("GET /api/exercises", h.List, "GET", "/api/exercises?status=active", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != model.ExerciseStatusActive {
		t.Errorf("expected ACTIVE, got %q", got)
	}
	var body map[string]json.RawMessage
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if string(body["exercises"]) != "[]" {
		t.Errorf("expected exercises=[], got %s", body["exercises"])
	}
}

func TestExerciseHandler_Create_ParsesDates(t *testing.T) {
	var got model.ExerciseInput
	h := NewExerciseHandler(&mockExerciseService{
		createFunc: func(_ context.Context, input model.ExerciseInput) (*model.Exercise, error) {
			got = input
			return &model.Exercise{ID: "ex-1", Name: input.Name}, nil
		},
	})
	rec := serve("POST /api/exercises", h.Create, "POST", "/api/exercises",
		`{"name":"Northern Edge","start_date":"2024-01-01","end_date":"2024-03-31T00:00:00Z","status":"planning"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.StartDate == nil || !got.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start date: %v", got.StartDate)
	}
	if got.EndDate == nil || !got.EndDate.Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end date: %v", got.EndDate)
	}
	if got.Status != model.ExerciseStatusPlanning {
		t.Errorf("expected PLANNING, got %q", got.Status)
	}
}

func TestExerciseHandler_Create_OmittedDatesAreNil(t *testing.T) {
	var got model.ExerciseInput
	h := NewExerciseHandler(&mockExerciseService{
		createFunc: func(_ context.Context, input model.ExerciseInput) (*model.Exercise, error) {
			got = input
			return &model.Exercise{}, nil
		},
	})
	rec := serve("POST /api/exercises", h.Create, "POST", "/api/exercises", `{"name":"Dry run"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.StartDate != nil || got.EndDate != nil {
		t.Errorf("expected nil dates, got %v / %v", got.StartDate, got.EndDate)
	}
}

func TestExerciseHandler_Create_BadDate(t *testing.T) {
	h := NewExerciseHandler(&mockExerciseService{})
	rec := serve("POST /api/exercises", h.Create, "POST", "/api/exercises",
		`{"name":"x","start_date":"01/02/2024"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp errorResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Error != "invalid_start_date" {
		t.Errorf("expected invalid_start_date, got %q", resp.Error)
	}
}

func TestExerciseHandler_UpdateStatus(t *testing.T) {
	var gotID string
	var gotStatus model.ExerciseStatus
	h := NewExerciseHandler(&mockExerciseService{
		updateStatusFunc: func(_ context.Context, id string, status model.ExerciseStatus) error {
			gotID, gotStatus = id, status
			return nil
		},
	})
	rec := serve("PATCH /api/exercises/{id}/status", h.UpdateStatus, "PATCH", "/api/exercises/ex-1/status",
		`{"status":"completed"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "ex-1" || gotStatus != model.ExerciseStatusCompleted {
		t.Errorf("unexpected call: id=%q status=%q", gotID, gotStatus)
	}
}

func TestExerciseHandler_AddSystem(t *testing.T) {
	var gotExercise string
	var got model.ExerciseSystemInput
	h := NewExerciseHandler(&mockExerciseService{
		addSystemFunc: func(_ context.Context, exerciseID string, input model.ExerciseSystemInput) (*model.ExerciseSystem, error) {
			gotExercise, got = exerciseID, input
			return &model.ExerciseSystem{ID: "es-1", ExerciseID: exerciseID, SystemID: input.SystemID}, nil
		},
	})
	rec := serve("POST /api/exercises/{id}/systems", h.AddSystem, "POST", "/api/exercises/ex-1/systems",
		`{"system_id":"sys-1","quantity":2,"fsr_support":"FULL_TIME","fsr_cost":5000,"launches_per_day":2,
		  "consumables":[{"preset_id":"p1","quantity":3},{"preset_id":"p2"}]}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotExercise != "ex-1" || got.Quantity != 2 || got.FSRSupport != "FULL_TIME" {
		t.Errorf("unexpected call: exercise=%q input=%+v", gotExercise, got)
	}
	if len(got.Consumables) != 2 || got.Consumables[0].Quantity == nil || *got.Consumables[0].Quantity != 3 {
		t.Fatalf("unexpected selections: %+v", got.Consumables)
	}
	if got.Consumables[1].Quantity != nil {
		t.Errorf("omitted quantity should stay nil, got %v", *got.Consumables[1].Quantity)
	}
}

func TestExerciseHandler_AddSystem_RequiresSystemID(t *testing.T) {
	called := false
	h := NewExerciseHandler(&mockExerciseService{
		addSystemFunc: func(context.Context, string, model.ExerciseSystemInput) (*model.ExerciseSystem, error) {
			called = true
			return nil, nil
		},
	})
	rec := serve("POST /api/exercises/{id}/systems", h.AddSystem, "POST", "/api/exercises/ex-1/systems", `{"quantity":1}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Error("service should not be called without system_id")
	}
}

func TestExerciseHandler_RemoveSystem_PassesBothIDs(t *testing.T) {
	var gotExercise, gotAssignment string
	h := NewExerciseHandler(&mockExerciseService{
		removeSystemFunc: func(_ context.Context, exerciseID, esID string) error {
			gotExercise, gotAssignment = exerciseID, esID
			return nil
		},
	})
	rec := serve("DELETE /api/exercises/{id}/systems/{sid}", h.RemoveSystem, "DELETE", "/api/exercises/ex-1/systems/es-7", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotExercise != "ex-1" || gotAssignment != "es-7" {
		t.Errorf("unexpected ids: %q %q", gotExercise, gotAssignment)
	}
}
