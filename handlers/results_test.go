// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
	"github.com/danielhkuo/quickpoll/testutil"
)

func TestGetResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	pollID, adminKey := testutil.CreateTestPoll(t, db, cfg, testutil.PollOpts{AllowComments: true})
	yes := testutil.AddTestOption(t, db, pollID, "Yes")
	no := testutil.AddTestOption(t, db, pollID, "No")
	maybe := testutil.AddTestOption(t, db, pollID, "Maybe")

	testutil.CreateTestResponse(t, db, pollID, yes, models.IdentifiedRespondent(models.Identity{ID: "u1", Name: "Ana"}), testutil.StrPtr("love it"))
	testutil.CreateTestResponse(t, db, pollID, yes, models.AnonymousRespondent("Guest"), nil)
	testutil.CreateTestResponse(t, db, pollID, yes, models.AnonymousRespondent("Guest"), nil)
	testutil.CreateTestResponse(t, db, pollID, no, models.AnonymousRespondent("Bo"), testutil.StrPtr("meh"))

	req := testutil.MakeRequest("GET", "/polls/"+pollID+"/results", nil, map[string]string{
		middleware.HeaderAdminKey: adminKey,
	})
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()

	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.TotalResponses != 4 {
		t.Errorf("Expected 4 responses, got %d", resp.TotalResponses)
	}

	expected := []struct {
		id    string
		count int
		share float64
	}{
		{yes, 3, 0.75},
		{no, 1, 0.25},
		{maybe, 0, 0},
	}
	if len(resp.Options) != len(expected) {
		t.Fatalf("Expected %d tallies, got %d", len(expected), len(resp.Options))
	}
	for i, e := range expected {
		got := resp.Options[i]
		if got.OptionID != e.id || got.Count != e.count {
			t.Errorf("tally %d: expected %s=%d, got %s=%d", i, e.id, e.count, got.OptionID, got.Count)
		}
		if math.Abs(got.Share-e.share) > 1e-9 {
			t.Errorf("tally %d: expected share %v, got %v", i, e.share, got.Share)
		}
	}

	if len(resp.Comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(resp.Comments))
	}
	names := map[string]string{}
	for _, c := range resp.Comments {
		names[c.RespondentName] = c.Comment
	}
	if names["Ana"] != "love it" || names["Bo"] != "meh" {
		t.Errorf("Unexpected comments %+v", resp.Comments)
	}
}

func TestGetResults_EmptyPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	pollID, adminKey := testutil.CreateTestPoll(t, db, cfg, testutil.PollOpts{})
	testutil.AddTestOption(t, db, pollID, "Only")

	req := testutil.MakeRequest("GET", "/polls/"+pollID+"/results", nil, map[string]string{
		middleware.HeaderAdminKey: adminKey,
	})
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()

	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.TotalResponses != 0 {
		t.Errorf("Expected 0 responses, got %d", resp.TotalResponses)
	}
	if len(resp.Options) != 1 || resp.Options[0].Share != 0 {
		t.Errorf("Unexpected tallies %+v", resp.Options)
	}
	if resp.Comments == nil {
		t.Error("Expected empty comments list, got null")
	}
}

func TestGetResults_Unauthorized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	pollID, _ := testutil.CreateTestPoll(t, db, cfg, testutil.PollOpts{})

	req := testutil.MakeRequest("GET", "/polls/"+pollID+"/results", nil, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()

	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
