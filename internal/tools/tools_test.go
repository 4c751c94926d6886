package tools

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/ziadkadry99/smartsupport/internal/llm"
	"github.com/ziadkadry99/smartsupport/internal/retriever"
	"github.com/ziadkadry99/smartsupport/internal/vectordb"
)

// recordingMailer captures send attempts.
type recordingMailer struct {
	configured bool
	sendErr    error
	sent       []string
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.sent = append(m.sent, to)
	return m.sendErr
}

func (m *recordingMailer) Configured() bool { return m.configured }

// fixedStore serves canned results for retriever-backed tests.
type fixedStore struct {
	results []vectordb.Result
	err     error
}

func (f *fixedStore) Insert(ctx context.Context, chunks []vectordb.Chunk) (int, error) {
	return len(chunks), nil
}

func (f *fixedStore) Search(ctx context.Context, query string, k int) ([]vectordb.Result, error) {
	return f.results, f.err
}

func (f *fixedStore) Clear(ctx context.Context) error { return nil }
func (f *fixedStore) Stats() vectordb.Stats           { return vectordb.Stats{} }

func TestDefinitionsCoreAlwaysPresent(t *testing.T) {
	r := NewRegistry(nil, nil, nil)

	defs := r.Definitions(Options{IncludeKnowledgeBase: true})
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}

	want := []string{"schedule_technician", "get_weather", "send_confirmation_email"}
	if len(names) != len(want) {
		t.Fatalf("expected %d tools without a retriever, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("tool %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestDefinitionsKnowledgeBaseToggle(t *testing.T) {
	ret := retriever.New(&fixedStore{}, 3)
	r := NewRegistry(ret, nil, nil)

	with := r.Definitions(Options{IncludeKnowledgeBase: true})
	if len(with) != 4 || with[3].Name != "search_knowledge_base" {
		t.Errorf("expected search_knowledge_base last, got %v", with)
	}

	without := r.Definitions(Options{})
	if len(without) != 3 {
		t.Errorf("expected 3 tools with the knowledge base off, got %d", len(without))
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	r := NewRegistry(nil, nil, nil)

	res := r.Execute(context.Background(), "fly_to_the_moon", nil)
	if res.Success {
		t.Error("expected failure for unknown tool")
	}
	if !regexp.MustCompile(`unknown tool`).MatchString(res.Message) {
		t.Errorf("expected 'unknown tool' in message, got %q", res.Message)
	}
}

func TestExecuteConvertsHandlerErrors(t *testing.T) {
	r := NewRegistry(nil, nil, nil)
	if err := r.register(llm.ToolDefinition{
		Name:       "broken",
		Parameters: llm.Schema{Type: "object"},
	}, func(ctx context.Context, args map[string]any) (ToolResult, error) {
		return ToolResult{}, errors.New("wires crossed")
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	res := r.Execute(context.Background(), "broken", nil)
	if res.Success {
		t.Error("expected failure result")
	}
	if !regexp.MustCompile(`wires crossed`).MatchString(res.Message) {
		t.Errorf("expected error text in message, got %q", res.Message)
	}
}

func TestExecuteRecoversPanics(t *testing.T) {
	r := NewRegistry(nil, nil, nil)
	if err := r.register(llm.ToolDefinition{
		Name:       "panicky",
		Parameters: llm.Schema{Type: "object"},
	}, func(ctx context.Context, args map[string]any) (ToolResult, error) {
		panic("boom")
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	res := r.Execute(context.Background(), "panicky", nil)
	if res.Success {
		t.Error("expected failure result after panic")
	}
}

func TestRegisterValidatesSchema(t *testing.T) {
	r := NewRegistry(nil, nil, nil)

	err := r.register(llm.ToolDefinition{
		Name: "bad_required",
		Parameters: llm.Schema{
			Type:       "object",
			Properties: map[string]llm.Property{"a": {Type: "string"}},
			Required:   []string{"missing"},
		},
	}, func(ctx context.Context, args map[string]any) (ToolResult, error) {
		return ToolResult{}, nil
	})
	if err == nil {
		t.Error("expected error for undeclared required parameter")
	}

	err = r.register(scheduleTechnicianDef, scheduleTechnician)
	if err == nil {
		t.Error("expected error for duplicate tool name")
	}
}

func TestScheduleTechnician(t *testing.T) {
	res, err := scheduleTechnician(context.Background(), map[string]any{"reason": "בדיקת נזילה"})
	if err != nil {
		t.Fatalf("scheduleTechnician: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}

	conf, _ := res.Data["confirmation_number"].(string)
	if !regexp.MustCompile(`^TEC-\d{5}$`).MatchString(conf) {
		t.Errorf("unexpected confirmation number %q", conf)
	}

	slot, _ := res.Data["scheduled_time"].(string)
	valid := false
	for _, s := range timeSlots {
		if s == slot {
			valid = true
		}
	}
	if !valid {
		t.Errorf("scheduled_time %q not in the fixed slot set", slot)
	}
}

func TestScheduleTechnicianPreferredDate(t *testing.T) {
	res, err := scheduleTechnician(context.Background(), map[string]any{
		"reason":         "בעיה במונה",
		"preferred_date": "15/09/2026",
	})
	if err != nil {
		t.Fatalf("scheduleTechnician: %v", err)
	}
	if res.Data["scheduled_date"] != "15/09/2026" {
		t.Errorf("expected preferred date to be honored, got %v", res.Data["scheduled_date"])
	}
}

func TestScheduleTechnicianRequiresReason(t *testing.T) {
	res, err := scheduleTechnician(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("scheduleTechnician: %v", err)
	}
	if res.Success {
		t.Error("expected failure without a reason")
	}
}

func TestSendEmailRejectsInvalidAddress(t *testing.T) {
	mailer := &recordingMailer{configured: true}
	handler := sendConfirmationEmailHandler(mailer)

	res, err := handler(context.Background(), map[string]any{
		"email": "not-an-email", "subject": "s", "details": "d",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if res.Success {
		t.Error("expected failure for invalid address")
	}
	if len(mailer.sent) != 0 {
		t.Error("expected no delivery attempt for invalid address")
	}
}

func TestSendEmailSimulatesWithoutCredentials(t *testing.T) {
	handler := sendConfirmationEmailHandler(&recordingMailer{configured: false})

	res, err := handler(context.Background(), map[string]any{
		"email": "customer@example.com", "subject": "s", "details": "d",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.Success {
		t.Errorf("expected simulated success, got %q", res.Message)
	}
	if res.Data["simulated"] != true {
		t.Error("expected simulated flag in result data")
	}
}

func TestSendEmailDelivers(t *testing.T) {
	mailer := &recordingMailer{configured: true}
	handler := sendConfirmationEmailHandler(mailer)

	res, err := handler(context.Background(), map[string]any{
		"email": "customer@example.com", "subject": "אישור", "details": "פרטים",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.Success {
		t.Errorf("expected success, got %q", res.Message)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "customer@example.com" {
		t.Errorf("expected one delivery, got %v", mailer.sent)
	}
}

func TestSendEmailMapsTransportFailure(t *testing.T) {
	mailer := &recordingMailer{configured: true, sendErr: errors.New("connection refused")}
	handler := sendConfirmationEmailHandler(mailer)

	res, err := handler(context.Background(), map[string]any{
		"email": "customer@example.com", "subject": "s", "details": "d",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if res.Success {
		t.Error("expected failure when transport errors")
	}
}

func TestGetWeatherUnknownCityFallsBack(t *testing.T) {
	var gotLat string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLat = r.URL.Query().Get("latitude")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current_weather":{"temperature":31.5,"windspeed":12.0,"weathercode":0}}`))
	}))
	defer ts.Close()

	handler := getWeatherHandler(NewWeatherClientWithBaseURL(ts.URL))
	res, err := handler(context.Background(), map[string]any{"city": "Atlantis"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success for unknown city, got %q", res.Message)
	}
	if gotLat != "32.0853" {
		t.Errorf("expected fallback to Tel Aviv latitude, got %q", gotLat)
	}
	if res.Data["description"] != "בהיר" {
		t.Errorf("expected clear-sky description, got %v", res.Data["description"])
	}
	if res.Data["tip"] == "" {
		t.Error("expected an advisory tip")
	}
}

func TestGetWeatherHebrewCity(t *testing.T) {
	var gotLat string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLat = r.URL.Query().Get("latitude")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current_weather":{"temperature":18.0,"windspeed":8.5,"weathercode":63}}`))
	}))
	defer ts.Close()

	handler := getWeatherHandler(NewWeatherClientWithBaseURL(ts.URL))
	res, err := handler(context.Background(), map[string]any{"city": "ירושלים"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if gotLat != "31.7683" {
		t.Errorf("expected Jerusalem latitude, got %q", gotLat)
	}
	if res.Data["description"] != "גשם" {
		t.Errorf("expected rain description, got %v", res.Data["description"])
	}
}

func TestGetWeatherServiceFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	handler := getWeatherHandler(NewWeatherClientWithBaseURL(ts.URL))
	res, err := handler(context.Background(), map[string]any{"city": "Tel Aviv"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if res.Success {
		t.Error("expected failure when the weather service errors")
	}
}

func TestSearchKnowledgeBaseFound(t *testing.T) {
	store := &fixedStore{results: []vectordb.Result{
		{Chunk: vectordb.Chunk{Content: "billing info", Metadata: map[string]string{"source": "billing.md"}}},
	}}
	handler := searchKnowledgeBaseHandler(retriever.New(store, 3))

	res, err := handler(context.Background(), map[string]any{"query": "תעריפי מים"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.Success || res.Data["found"] != true {
		t.Errorf("expected found result, got %+v", res)
	}
	sources, _ := res.Data["sources"].([]string)
	if len(sources) != 1 || sources[0] != "billing.md" {
		t.Errorf("expected billing.md source, got %v", sources)
	}
}

func TestSearchKnowledgeBaseNothingRelevant(t *testing.T) {
	handler := searchKnowledgeBaseHandler(retriever.New(&fixedStore{}, 3))

	res, err := handler(context.Background(), map[string]any{"query": "anything"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.Success {
		t.Error("an empty search is not a failure")
	}
	if res.Data["found"] != false {
		t.Error("expected found=false for an empty index")
	}
}

func TestSearchKnowledgeBaseFailure(t *testing.T) {
	handler := searchKnowledgeBaseHandler(retriever.New(&fixedStore{err: errors.New("offline")}, 3))

	res, err := handler(context.Background(), map[string]any{"query": "anything"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if res.Success {
		t.Error("expected failure when the store errors")
	}
	if res.Data["found"] != false {
		t.Error("expected found=false on failure")
	}
}
