// ABOUTME: In-memory fake of the Beeminder API for tests.
// ABOUTME: Serves goal and datapoint CRUD with the real endpoint shapes.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/beeminder/internal/models"
)

// Server is a stateful stand-in for the remote Beeminder service. It
// enforces the same surface semantics the client depends on: token auth,
// 404 for unknown slugs, and the JSON error envelope.
type Server struct {
	mu         sync.Mutex
	httpServer *httptest.Server

	Token    string
	Username string
	User     models.User

	goals      map[string]*models.Goal
	datapoints map[string][]*models.Datapoint
	nextID     int

	// Requests counts every request received, including rejected ones.
	Requests int
}

// NewServer starts a fake service for the given user and token.
func NewServer(username, token string) *Server {
	s := &Server{
		Token:    token,
		Username: username,
		User: models.User{
			Username: username,
			Timezone: "America/Chicago",
		},
		goals:      make(map[string]*models.Goal),
		datapoints: make(map[string][]*models.Datapoint),
	}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the fake service's base URL.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the fake service down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// RequestCount returns how many requests the server has seen.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Requests
}

// AddGoal seeds a goal directly, bypassing the API.
func (s *Server) AddGoal(g *models.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[g.Slug] = g
}

// Goal returns a seeded or created goal by slug.
func (s *Server) Goal(slug string) (*models.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[slug]
	return g, ok
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests++

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "unparseable request")
		return
	}
	if r.Form.Get("auth_token") != s.Token {
		writeError(w, http.StatusUnauthorized, "bad auth token")
		return
	}

	prefix := "/users/" + s.Username
	if !strings.HasPrefix(r.URL.Path, prefix) {
		writeError(w, http.StatusNotFound, "unknown user")
		return
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, prefix), ".json")
	segments := strings.Split(strings.TrimPrefix(rest, "/"), "/")
	if rest == "" {
		segments = nil
	}

	switch {
	case len(segments) == 0:
		s.handleUser(w)
	case segments[0] != "goals":
		writeError(w, http.StatusNotFound, "unknown resource")
	case len(segments) == 1:
		s.handleGoals(w, r)
	case len(segments) == 2 && segments[1] == "archived":
		writeJSON(w, []*models.Goal{})
	case len(segments) == 2:
		s.handleGoal(w, r, segments[1])
	case len(segments) == 3 && segments[2] == "datapoints":
		s.handleDatapoints(w, r, segments[1])
	case len(segments) == 4 && segments[2] == "datapoints" && segments[3] == "create_all":
		s.handleCreateAll(w, r, segments[1])
	case len(segments) == 4 && segments[2] == "datapoints":
		s.handleDatapoint(w, r, segments[1], segments[3])
	default:
		writeError(w, http.StatusNotFound, "unknown resource")
	}
}

func (s *Server) handleUser(w http.ResponseWriter) {
	user := s.User
	user.Goals = user.Goals[:0]
	for slug := range s.goals {
		user.Goals = append(user.Goals, slug)
	}
	writeJSON(w, user)
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		goals := make([]*models.Goal, 0, len(s.goals))
		for _, g := range s.goals {
			goals = append(goals, g)
		}
		writeJSON(w, goals)
	case http.MethodPost:
		slug := r.PostForm.Get("slug")
		if slug == "" {
			writeError(w, http.StatusUnprocessableEntity, "slug is required")
			return
		}
		if _, exists := s.goals[slug]; exists {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("slug %q already in use", slug))
			return
		}
		goal := &models.Goal{
			Slug:      slug,
			Title:     r.PostForm.Get("title"),
			GoalType:  models.GoalType(r.PostForm.Get("goal_type")),
			Gunits:    r.PostForm.Get("gunits"),
			Safebuf:   7,
			UpdatedAt: time.Now().Unix(),
		}
		if p, ok := models.LookupPolicy(goal.GoalType); ok {
			goal.Yaw = p.Yaw
			goal.Dir = p.Dir
			goal.Kyoom = p.Kyoom
			goal.Odom = p.Odom
			goal.Aggday = p.Aggday
		}
		if v := r.PostForm.Get("rate"); v != "" {
			f, _ := strconv.ParseFloat(v, 64)
			goal.Rate = &f
		}
		if v := r.PostForm.Get("goalval"); v != "" {
			f, _ := strconv.ParseFloat(v, 64)
			goal.Goalval = &f
		}
		if v := r.PostForm.Get("goaldate"); v != "" {
			n, _ := strconv.ParseInt(v, 10, 64)
			goal.Goaldate = &n
		}
		s.goals[slug] = goal
		writeJSON(w, goal)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request, slug string) {
	goal, ok := s.goals[slug]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no goal %q", slug))
		return
	}

	switch r.Method {
	case http.MethodGet:
		out := *goal
		if r.Form.Get("datapoints") == "true" {
			out.Datapoints = s.datapoints[slug]
		}
		writeJSON(w, &out)
	case http.MethodPut:
		if v := r.PostForm.Get("title"); v != "" {
			goal.Title = v
		}
		if v := r.PostForm.Get("rate"); v != "" {
			f, _ := strconv.ParseFloat(v, 64)
			goal.Rate = &f
		}
		if v := r.PostForm.Get("goalval"); v != "" {
			f, _ := strconv.ParseFloat(v, 64)
			goal.Goalval = &f
		}
		if v := r.PostForm.Get("fineprint"); v != "" {
			goal.Fineprint = v
		}
		goal.UpdatedAt = time.Now().Unix()
		writeJSON(w, goal)
	case http.MethodDelete:
		delete(s.goals, slug)
		delete(s.datapoints, slug)
		writeJSON(w, goal)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleDatapoints(w http.ResponseWriter, r *http.Request, slug string) {
	if _, ok := s.goals[slug]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no goal %q", slug))
		return
	}

	switch r.Method {
	case http.MethodGet:
		dps := s.datapoints[slug]
		if dps == nil {
			dps = []*models.Datapoint{}
		}
		writeJSON(w, dps)
	case http.MethodPost:
		dp := s.makeDatapoint(r.PostForm.Get("value"), r.PostForm.Get("timestamp"),
			r.PostForm.Get("daystamp"), r.PostForm.Get("comment"), r.PostForm.Get("requestid"))
		s.datapoints[slug] = append(s.datapoints[slug], dp)
		writeJSON(w, dp)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateAll(w http.ResponseWriter, r *http.Request, slug string) {
	if _, ok := s.goals[slug]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no goal %q", slug))
		return
	}

	var batch []struct {
		Value     float64 `json:"value"`
		Timestamp *int64  `json:"timestamp"`
		Daystamp  string  `json:"daystamp"`
		Comment   string  `json:"comment"`
		RequestID string  `json:"requestid"`
	}
	if err := json.Unmarshal([]byte(r.PostForm.Get("datapoints")), &batch); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "datapoints must be a JSON array")
		return
	}

	created := make([]*models.Datapoint, 0, len(batch))
	for _, entry := range batch {
		ts := ""
		if entry.Timestamp != nil {
			ts = strconv.FormatInt(*entry.Timestamp, 10)
		}
		dp := s.makeDatapoint(strconv.FormatFloat(entry.Value, 'f', -1, 64), ts,
			entry.Daystamp, entry.Comment, entry.RequestID)
		s.datapoints[slug] = append(s.datapoints[slug], dp)
		created = append(created, dp)
	}
	writeJSON(w, created)
}

func (s *Server) handleDatapoint(w http.ResponseWriter, r *http.Request, slug, id string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if _, ok := s.goals[slug]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no goal %q", slug))
		return
	}

	dps := s.datapoints[slug]
	for i, dp := range dps {
		if dp.ID == id {
			s.datapoints[slug] = append(dps[:i], dps[i+1:]...)
			writeJSON(w, dp)
			return
		}
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("no datapoint %q", id))
}

func (s *Server) makeDatapoint(value, timestamp, daystamp, comment, requestid string) *models.Datapoint {
	s.nextID++
	v, _ := strconv.ParseFloat(value, 64)

	dp := &models.Datapoint{
		ID:        fmt.Sprintf("dp%04d", s.nextID),
		Value:     v,
		Comment:   comment,
		RequestID: requestid,
		Origin:    "api",
		UpdatedAt: time.Now().Unix(),
	}
	switch {
	case timestamp != "":
		dp.Timestamp, _ = strconv.ParseInt(timestamp, 10, 64)
		dp.Daystamp = time.Unix(dp.Timestamp, 0).UTC().Format(models.DaystampFormat)
	case daystamp != "":
		if t, err := models.ParseDaystamp(daystamp); err == nil {
			dp.Timestamp = t.Unix()
			dp.Daystamp = t.Format(models.DaystampFormat)
		}
	default:
		now := time.Now()
		dp.Timestamp = now.Unix()
		dp.Daystamp = now.Format(models.DaystampFormat)
	}
	return dp
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errors": map[string]string{"message": message},
	})
}
