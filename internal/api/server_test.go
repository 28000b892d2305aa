package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Luckywi/balzac-api/internal/booking"
	"github.com/Luckywi/balzac-api/internal/models"
	"github.com/Luckywi/balzac-api/internal/store"
)

// 2026-01-05 is a Monday; the test clock is 08:00 that morning.
var testNow = time.Date(2026, time.January, 5, 8, 0, 0, 0, time.Local)

// fakeDB implements both DataStore and booking.Repository in memory.
type fakeDB struct {
	salon    *models.SalonConfig
	staff    map[string]*models.StaffAvailability
	services map[string]*models.Service
	sections []models.ServiceSection
	rdvs     []models.Appointment
	tokens   []string
}

func (f *fakeDB) GetSalonConfig(ctx context.Context) (*models.SalonConfig, error) {
	if f.salon == nil {
		return nil, store.ErrNotFound
	}
	return f.salon, nil
}

func (f *fakeDB) SaveSalonConfig(ctx context.Context, cfg *models.SalonConfig) error {
	f.salon = cfg
	return nil
}

func (f *fakeDB) GetStaffAvailability(ctx context.Context, staffID string) (*models.StaffAvailability, error) {
	doc, ok := f.staff[staffID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return doc, nil
}

func (f *fakeDB) SaveStaffAvailability(ctx context.Context, doc *models.StaffAvailability) error {
	f.staff[doc.StaffID] = doc
	return nil
}

func (f *fakeDB) ListStaff(ctx context.Context) ([]models.StaffAvailability, error) {
	var out []models.StaffAvailability
	for _, doc := range f.staff {
		out = append(out, *doc)
	}
	return out, nil
}

func (f *fakeDB) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return svc, nil
}

func (f *fakeDB) ListServices(ctx context.Context, sectionID string) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if sectionID == "" || svc.SectionID == sectionID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (f *fakeDB) SaveService(ctx context.Context, svc *models.Service) error {
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeDB) DeleteService(ctx context.Context, id string) error {
	if _, ok := f.services[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.services, id)
	return nil
}

func (f *fakeDB) ListSections(ctx context.Context) ([]models.ServiceSection, error) {
	return f.sections, nil
}

func (f *fakeDB) SaveSection(ctx context.Context, section *models.ServiceSection) error {
	for i := range f.sections {
		if f.sections[i].ID == section.ID {
			f.sections[i] = *section
			return nil
		}
	}
	f.sections = append(f.sections, *section)
	return nil
}

func (f *fakeDB) DeleteSection(ctx context.Context, id string) error {
	for i := range f.sections {
		if f.sections[i].ID != id {
			continue
		}
		f.sections = append(f.sections[:i], f.sections[i+1:]...)
		for sid, svc := range f.services {
			if svc.SectionID == id {
				delete(f.services, sid)
			}
		}
		return nil
	}
	return store.ErrNotFound
}

func (f *fakeDB) AppointmentsForDay(ctx context.Context, staffID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, r := range f.rdvs {
		if r.StaffID == staffID && r.OnDate(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDB) ListAppointments(ctx context.Context, from, to, staffID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, r := range f.rdvs {
		date := r.Start[:10]
		if date < from || date > to {
			continue
		}
		if staffID != "" && r.StaffID != staffID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeDB) CreateAppointment(ctx context.Context, rdv *models.Appointment) error {
	for i := range f.rdvs {
		if f.rdvs[i].StaffID == rdv.StaffID && f.rdvs[i].OverlapsWith(rdv) {
			return store.ErrSlotTaken
		}
	}
	f.rdvs = append(f.rdvs, *rdv)
	return nil
}

func (f *fakeDB) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	for i := range f.rdvs {
		if f.rdvs[i].ID == id {
			return &f.rdvs[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeDB) DeleteAppointment(ctx context.Context, id string) error {
	for i := range f.rdvs {
		if f.rdvs[i].ID == id {
			f.rdvs = append(f.rdvs[:i], f.rdvs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeDB) SavePushToken(ctx context.Context, token, platform string) error {
	f.tokens = append(f.tokens, token)
	return nil
}

func (f *fakeDB) Ping(ctx context.Context) error { return nil }

func newTestDB() *fakeDB {
	salon := &models.SalonConfig{
		WorkDays:  make(map[models.Day]bool),
		WorkHours: make(map[models.Day]models.TimeRange),
	}
	staff := &models.StaffAvailability{
		StaffID:      "bea",
		WorkingHours: make(map[models.Day]models.StaffDay),
	}
	for _, d := range models.AllDays() {
		salon.WorkDays[d] = true
		salon.WorkHours[d] = models.TimeRange{Start: "09:00", End: "18:00"}
		staff.WorkingHours[d] = models.StaffDay{
			Working: true,
			Ranges:  []models.TimeRange{{Start: "09:00", End: "18:00"}},
		}
	}
	return &fakeDB{
		salon: salon,
		staff: map[string]*models.StaffAvailability{"bea": staff},
		services: map[string]*models.Service{
			"cut": {ID: "cut", Title: "Coupe", Duration: 30, OriginalPrice: 45, SectionID: "women"},
		},
		sections: []models.ServiceSection{{ID: "women", Title: "Coupes femmes"}},
	}
}

type testServer struct {
	*httptest.Server
	db *fakeDB
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	db := newTestDB()
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)

	bookingSvc := booking.NewService(db, &logger)
	bookingSvc.WithClock(func() time.Time { return testNow })

	server := NewHTTPServer(Options{Port: 0}, bookingSvc, db, &logger)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, db: db}
}

func getJSON(t *testing.T, srv *testServer, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, srv *testServer, path string, body interface{}, out interface{}) int {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestHandleAvailability_Validation(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"missing params", "/api/availability", http.StatusBadRequest},
		{"missing service", "/api/availability?date=2026-01-05&staff_id=bea", http.StatusBadRequest},
		{"bad date", "/api/availability?date=05-01-2026&staff_id=bea&service_id=cut", http.StatusBadRequest},
		{"unknown service", "/api/availability?date=2026-01-05&staff_id=bea&service_id=nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getJSON(t, srv, tt.path, nil); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestHandleAvailability_Slots(t *testing.T) {
	srv := setupTestServer(t)

	var resp AvailabilityResponse
	status := getJSON(t, srv, "/api/availability?date=2026-01-05&staff_id=bea&service_id=cut", &resp)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(resp.Slots) != 35 {
		t.Errorf("expected 35 slots, got %d", len(resp.Slots))
	}
	if resp.Slots[0] != "09:00" || resp.Slots[len(resp.Slots)-1] != "17:30" {
		t.Errorf("unexpected slot bounds: %s..%s", resp.Slots[0], resp.Slots[len(resp.Slots)-1])
	}
}

func TestHandleSlotCheck(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name          string
		body          SlotCheckRequest
		wantStatus    int
		wantAvailable bool
		wantReason    string
	}{
		{
			name:          "open interval",
			body:          SlotCheckRequest{Start: "2026-01-05T10:00:00", End: "2026-01-05T11:00:00", StaffID: "bea"},
			wantStatus:    http.StatusOK,
			wantAvailable: true,
		},
		{
			name:       "before opening",
			body:       SlotCheckRequest{Start: "2026-01-05T08:00:00", End: "2026-01-05T08:30:00"},
			wantStatus: http.StatusOK,
			wantReason: "unavailable",
		},
		{
			name:       "previous day",
			body:       SlotCheckRequest{Start: "2026-01-04T10:00:00", End: "2026-01-04T11:00:00"},
			wantStatus: http.StatusOK,
			wantReason: "past",
		},
		{
			name:       "inverted interval",
			body:       SlotCheckRequest{Start: "2026-01-05T11:00:00", End: "2026-01-05T10:00:00"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed start",
			body:       SlotCheckRequest{Start: "10h00", End: "2026-01-05T11:00:00"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp SlotCheckResponse
			var out interface{}
			if tt.wantStatus == http.StatusOK {
				out = &resp
			}
			status := postJSON(t, srv, "/api/slots/check", tt.body, out)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if resp.Available != tt.wantAvailable {
				t.Errorf("available = %v, want %v", resp.Available, tt.wantAvailable)
			}
			if resp.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", resp.Reason, tt.wantReason)
			}
		})
	}
}

func TestHandleCreateRdv(t *testing.T) {
	srv := setupTestServer(t)

	var rdv models.Appointment
	status := postJSON(t, srv, "/api/rdvs", CreateRdvRequest{
		ServiceID:  "cut",
		StaffID:    "bea",
		Start:      "2026-01-05T10:00:00",
		ClientName: "Alice",
	}, &rdv)
	if status != http.StatusCreated {
		t.Fatalf("status = %d", status)
	}
	if rdv.End != "2026-01-05T10:30:00" {
		t.Errorf("end = %q", rdv.End)
	}

	// Overlapping booking is rejected with a conflict.
	status = postJSON(t, srv, "/api/rdvs", CreateRdvRequest{
		ServiceID: "cut",
		StaffID:   "bea",
		Start:     "2026-01-05T10:15:00",
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("overlap status = %d, want 409", status)
	}

	// Booked slot disappears from availability.
	var avail AvailabilityResponse
	getJSON(t, srv, "/api/availability?date=2026-01-05&staff_id=bea&service_id=cut", &avail)
	for _, slot := range avail.Slots {
		if slot == "10:00" || slot == "09:45" || slot == "10:15" {
			t.Errorf("slot %s should be gone after booking", slot)
		}
	}

	// Past and outside-hours bookings.
	if status := postJSON(t, srv, "/api/rdvs", CreateRdvRequest{ServiceID: "cut", StaffID: "bea", Start: "2026-01-04T10:00:00"}, nil); status != http.StatusBadRequest {
		t.Errorf("past booking status = %d, want 400", status)
	}
	if status := postJSON(t, srv, "/api/rdvs", CreateRdvRequest{ServiceID: "cut", StaffID: "bea", Start: "2026-01-05T18:30:00"}, nil); status != http.StatusConflict {
		t.Errorf("outside-hours booking status = %d, want 409", status)
	}
}

func TestHandleListRdvs(t *testing.T) {
	srv := setupTestServer(t)
	srv.db.rdvs = []models.Appointment{
		{ID: "r1", StaffID: "bea", Start: "2026-01-05T10:00:00", End: "2026-01-05T10:30:00"},
		{ID: "r2", StaffID: "cyrille", Start: "2026-01-06T10:00:00", End: "2026-01-06T10:30:00"},
	}

	var rdvs []models.Appointment
	status := getJSON(t, srv, "/api/rdvs?from=2026-01-05&to=2026-01-07", &rdvs)
	if status != http.StatusOK || len(rdvs) != 2 {
		t.Errorf("status = %d, len = %d", status, len(rdvs))
	}

	getJSON(t, srv, "/api/rdvs?from=2026-01-05&to=2026-01-07&staff_id=bea", &rdvs)
	if len(rdvs) != 1 || rdvs[0].ID != "r1" {
		t.Errorf("staff filter failed: %+v", rdvs)
	}

	getJSON(t, srv, "/api/rdvs?date=2026-01-06", &rdvs)
	if len(rdvs) != 1 || rdvs[0].ID != "r2" {
		t.Errorf("date shorthand failed: %+v", rdvs)
	}

	if status := getJSON(t, srv, "/api/rdvs?from=2026-01-05&to=2026-06-01", nil); status != http.StatusBadRequest {
		t.Errorf("range over 90 days: status = %d, want 400", status)
	}
	if status := getJSON(t, srv, "/api/rdvs?from=2026-01-07&to=2026-01-05", nil); status != http.StatusBadRequest {
		t.Errorf("inverted range: status = %d, want 400", status)
	}
}

func TestHandleDeleteRdv(t *testing.T) {
	srv := setupTestServer(t)
	srv.db.rdvs = []models.Appointment{
		{ID: "r1", StaffID: "bea", Start: "2026-01-05T10:00:00", End: "2026-01-05T10:30:00"},
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/rdvs/r1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if len(srv.db.rdvs) != 0 {
		t.Error("appointment not deleted")
	}

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestSalonConfigRoundTrip(t *testing.T) {
	srv := setupTestServer(t)
	srv.db.salon = nil

	if status := getJSON(t, srv, "/api/salon", nil); status != http.StatusNotFound {
		t.Errorf("empty salon status = %d, want 404", status)
	}

	cfg := models.SalonConfig{
		WorkDays:  map[models.Day]bool{models.Monday: true},
		WorkHours: map[models.Day]models.TimeRange{models.Monday: {Start: "09:00", End: "18:00"}},
		Breaks:    []models.Break{{Day: models.Monday, Start: "12:00", End: "13:00"}},
	}
	body, _ := json.Marshal(cfg)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/salon", bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", resp.StatusCode)
	}

	var got models.SalonConfig
	getJSON(t, srv, "/api/salon", &got)
	if !got.WorkDays[models.Monday] {
		t.Error("saved config lost workDays")
	}
	if len(got.Breaks) != 1 || got.Breaks[0].ID == "" {
		t.Error("break id was not assigned on save")
	}

	// Working day without hours is rejected.
	bad := models.SalonConfig{WorkDays: map[models.Day]bool{models.Tuesday: true}}
	body, _ = json.Marshal(bad)
	req, _ = http.NewRequest(http.MethodPut, srv.URL+"/api/salon", bytes.NewReader(body))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid config status = %d, want 400", resp.StatusCode)
	}
}

func TestStaffAvailabilityRoundTrip(t *testing.T) {
	srv := setupTestServer(t)

	doc := models.StaffAvailability{
		WorkingHours: map[models.Day]models.StaffDay{
			models.Monday: {Working: true, Ranges: []models.TimeRange{{Start: "10:00", End: "16:00"}}},
		},
	}
	body, _ := json.Marshal(doc)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/staff/cyrille/availability", bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", resp.StatusCode)
	}

	var got models.StaffAvailability
	status := getJSON(t, srv, "/api/staff/cyrille/availability", &got)
	if status != http.StatusOK || got.StaffID != "cyrille" {
		t.Errorf("round trip failed: status %d, staffId %q", status, got.StaffID)
	}

	if status := getJSON(t, srv, "/api/staff/ghost/availability", nil); status != http.StatusNotFound {
		t.Errorf("unknown staff status = %d, want 404", status)
	}
}

func TestHandleCatalog(t *testing.T) {
	srv := setupTestServer(t)

	var services []models.Service
	if status := getJSON(t, srv, "/api/services", &services); status != http.StatusOK || len(services) != 1 {
		t.Errorf("services: status %d, len %d", status, len(services))
	}

	var sections []models.ServiceSection
	if status := getJSON(t, srv, "/api/sections", &sections); status != http.StatusOK || len(sections) != 1 {
		t.Errorf("sections: status %d, len %d", status, len(sections))
	}
}

func TestCatalogWrites(t *testing.T) {
	srv := setupTestServer(t)

	var section models.ServiceSection
	status := postJSON(t, srv, "/api/sections", SectionRequest{Title: "  Coupes hommes "}, &section)
	if status != http.StatusCreated {
		t.Fatalf("create section status = %d", status)
	}
	if section.ID == "" || section.Title != "Coupes hommes" {
		t.Errorf("section = %+v", section)
	}

	var svc models.Service
	status = postJSON(t, srv, "/api/services", ServiceRequest{
		Title:         "Barbe",
		Duration:      15,
		OriginalPrice: 20,
		Discount:      -15,
		SectionID:     section.ID,
	}, &svc)
	if status != http.StatusCreated {
		t.Fatalf("create service status = %d", status)
	}
	if svc.ID == "" || svc.DiscountedPrice != 17 {
		t.Errorf("service = %+v", svc)
	}

	// Path id wins on update.
	body, _ := json.Marshal(ServiceRequest{
		Title: "Barbe longue", Duration: 30, OriginalPrice: 25, SectionID: section.ID,
	})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/services/"+svc.ID, bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update service status = %d", resp.StatusCode)
	}
	if got := srv.db.services[svc.ID]; got.Duration != 30 || got.DiscountedPrice != 0 {
		t.Errorf("updated service = %+v", got)
	}

	// Deleting the section removes its services too.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/sections/"+section.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete section status = %d", resp.StatusCode)
	}
	if _, ok := srv.db.services[svc.ID]; ok {
		t.Error("section delete left its service behind")
	}

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/services/ghost", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("delete unknown service status = %d, want 404", resp.StatusCode)
	}
}

func TestCatalogWriteValidation(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name string
		req  ServiceRequest
	}{
		{"missing title", ServiceRequest{Duration: 30, OriginalPrice: 10, SectionID: "women"}},
		{"zero duration", ServiceRequest{Title: "Coupe", OriginalPrice: 10, SectionID: "women"}},
		{"negative price", ServiceRequest{Title: "Coupe", Duration: 30, OriginalPrice: -1, SectionID: "women"}},
		{"positive discount", ServiceRequest{Title: "Coupe", Duration: 30, OriginalPrice: 10, Discount: 15, SectionID: "women"}},
		{"missing section", ServiceRequest{Title: "Coupe", Duration: 30, OriginalPrice: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := postJSON(t, srv, "/api/services", tt.req, nil); status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}

	if status := postJSON(t, srv, "/api/sections", SectionRequest{Title: "   "}, nil); status != http.StatusBadRequest {
		t.Errorf("blank section title status = %d, want 400", status)
	}
}

func TestHandleRegisterToken(t *testing.T) {
	srv := setupTestServer(t)

	if status := postJSON(t, srv, "/api/push/tokens", RegisterTokenRequest{Token: "tok-1", Platform: "ios"}, nil); status != http.StatusNoContent {
		t.Errorf("status = %d, want 204", status)
	}
	if len(srv.db.tokens) != 1 {
		t.Error("token not saved")
	}

	if status := postJSON(t, srv, "/api/push/tokens", RegisterTokenRequest{}, nil); status != http.StatusBadRequest {
		t.Errorf("empty token status = %d, want 400", status)
	}
}

func TestHandleExportRdvs(t *testing.T) {
	srv := setupTestServer(t)
	srv.db.rdvs = []models.Appointment{
		{ID: "r1", StaffID: "bea", ServiceTitle: "Coupe", Start: "2026-01-05T10:00:00", End: "2026-01-05T10:30:00"},
	}

	resp, err := http.Get(srv.URL + "/api/rdvs/export?from=2026-01-05&to=2026-01-05")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}
}

func TestHealthz(t *testing.T) {
	srv := setupTestServer(t)

	var resp map[string]string
	if status := getJSON(t, srv, "/healthz", &resp); status != http.StatusOK || resp["status"] != "ok" {
		t.Errorf("health: status %d, body %v", status, resp)
	}
}
