package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"devboard-backend/internal/platforms"
)

func restServer(t *testing.T, remaining int, repoPages int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		switch {
		case r.URL.Path == "/users/octocat":
			json.NewEncoder(w).Encode(restUser{
				Login: "octocat", Name: "The Octocat", Followers: 100, PublicRepos: 250,
			})
		case r.URL.Path == "/users/octocat/repos":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			if page > repoPages {
				json.NewEncoder(w).Encode([]restRepo{})
				return
			}
			batch := make([]restRepo, 100)
			for i := range batch {
				batch[i] = restRepo{
					Name:            fmt.Sprintf("repo-%d-%d", page, i),
					Language:        "Go",
					StargazersCount: i,
				}
			}
			json.NewEncoder(w).Encode(batch)
		case r.URL.Path == "/users/ghost":
			http.NotFound(w, r)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
}

func TestFetchRESTAggregatesRepos(t *testing.T) {
	srv := restServer(t, 5000, 1)
	defer srv.Close()

	c := New("", WithBaseURLs(srv.URL, srv.URL+"/graphql"))
	got, truncated, err := c.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	profile := got.(*Profile)
	if truncated {
		t.Error("unexpected truncation with full quota")
	}
	if profile.Login != "octocat" || profile.PublicRepos != 250 {
		t.Errorf("profile = %+v", profile)
	}
	if len(profile.TopRepos) != 6 {
		t.Errorf("top repos = %d, want 6", len(profile.TopRepos))
	}
	if len(profile.TopLanguages) != 1 || profile.TopLanguages[0].Language != "Go" {
		t.Errorf("languages = %+v", profile.TopLanguages)
	}
}

func TestFetchRESTTruncatesOnLowQuota(t *testing.T) {
	srv := restServer(t, rateLimitLowWater-1, 5)
	defer srv.Close()

	c := New("", WithBaseURLs(srv.URL, srv.URL+"/graphql"))
	_, truncated, err := c.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !truncated {
		t.Error("expected truncated result when quota is below the low-water mark")
	}
}

func TestFetchRESTNotFound(t *testing.T) {
	srv := restServer(t, 5000, 1)
	defer srv.Close()

	c := New("", WithBaseURLs(srv.URL, srv.URL+"/graphql"))
	_, _, err := c.Fetch(context.Background(), "ghost")
	if !errors.Is(err, platforms.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestFetchRejectsInvalidHandle(t *testing.T) {
	c := New("")
	_, _, err := c.Fetch(context.Background(), "not a handle")
	if !errors.Is(err, platforms.ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
}

func TestFetchGraphQLWithToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"data":{"user":{
			"login":"octocat","name":"The Octocat",
			"followers":{"totalCount":12},"following":{"totalCount":3},
			"contributionsCollection":{"contributionCalendar":{"totalContributions":900}},
			"repositories":{"totalCount":2,"nodes":[
				{"name":"alpha","stargazerCount":10,"forkCount":2,"primaryLanguage":{"name":"Go"}},
				{"name":"beta","stargazerCount":4,"forkCount":1,"primaryLanguage":{"name":"Python"}}
			]}}}}`))
	}))
	defer srv.Close()

	c := New("tok", WithBaseURLs(srv.URL, srv.URL+"/graphql"))
	got, truncated, err := c.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	profile := got.(*Profile)
	if truncated {
		t.Error("graphql path should not truncate")
	}
	if profile.TotalStars != 14 || profile.Contributions != 900 {
		t.Errorf("profile = %+v", profile)
	}
}

func TestFetchGraphQLNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/graphql" {
			w.Write([]byte(`{"data":{"user":null},"errors":[{"type":"NOT_FOUND","message":"no such user"}]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New("tok", WithBaseURLs(srv.URL, srv.URL+"/graphql"))
	_, _, err := c.Fetch(context.Background(), "ghost")
	if !errors.Is(err, platforms.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
