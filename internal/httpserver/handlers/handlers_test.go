package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anhdng/songngu/internal/backup"
	"github.com/anhdng/songngu/internal/content"
	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/httpserver/routes"
	"github.com/anhdng/songngu/internal/images"
	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/notify"
	"github.com/anhdng/songngu/internal/store/memory"
)

type testServer struct {
	router  chi.Router
	content *content.Store
	backups *backup.Manager
	images  *images.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	kv := memory.New(0)
	bus := notify.NewBus()
	log := logger.Nop()

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seq := 0
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	newID := func() string {
		seq++
		return fmt.Sprintf("id-%04d", seq)
	}

	c := content.New(kv, bus)
	mgr := backup.NewManager(c, kv, notify.Nop{}, bus, log, backup.Config{Now: now, NewID: newID})
	imgs := images.New(kv, notify.Nop{}, bus, log, images.Config{Now: now, NewID: newID})

	d := deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		TimeNow:         now,
		KV:              kv,
		Content:         c,
		Backups:         mgr,
		Images:          imgs,
		DefaultLanguage: domain.LanguageVi,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	return &testServer{router: r, content: c, backups: mgr, images: imgs}
}

func (ts *testServer) do(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == nil {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

type testEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func validHero() domain.HeroContent {
	return domain.HeroContent{
		Greeting: domain.BilingualText{Vi: "Xin chào", En: "Hello"},
		Name:     "Anh Đặng",
		Title:    domain.BilingualText{Vi: "Kỹ sư phần mềm", En: "Software Engineer"},
		Subtitle: domain.BilingualText{Vi: "Xây dựng sản phẩm", En: "Building products"},
		CTAText:  domain.BilingualText{Vi: "Liên hệ", En: "Get in touch"},
		CTALink:  "#contact",
	}
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %q, want status ok", rec.Body.String())
	}
}

func TestReadyz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGetHeroBeforeAnySave(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/admin/content/hero", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPutHeroThenGet(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/api/admin/content/hero", marshal(t, validHero()))
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("put success = false")
	}

	rec = ts.do(t, http.MethodGet, "/api/admin/content/hero", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got domain.HeroContent
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &got); err != nil {
		t.Fatalf("decode hero: %v", err)
	}
	if got.Name != "Anh Đặng" {
		t.Fatalf("hero name = %q", got.Name)
	}
}

func TestPutHeroSanitizesBeforeSaving(t *testing.T) {
	ts := newTestServer(t)
	hero := validHero()
	hero.Name = "  Anh Đặng  "

	rec := ts.do(t, http.MethodPut, "/api/admin/content/hero", marshal(t, hero))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	saved, err := ts.content.Hero(context.Background())
	if err != nil || saved == nil {
		t.Fatalf("hero not saved: %v", err)
	}
	if saved.Name != "Anh Đặng" {
		t.Fatalf("saved name = %q, want trimmed", saved.Name)
	}
}

func TestPutHeroValidationFailure(t *testing.T) {
	ts := newTestServer(t)
	hero := validHero()
	hero.Greeting.En = ""
	hero.CTALink = "not a link"

	rec := ts.do(t, http.MethodPut, "/api/admin/content/hero", marshal(t, hero))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatalf("success = true on validation failure")
	}
	if _, ok := env.Errors["greeting_en"]; !ok {
		t.Fatalf("missing greeting_en error, got %v", env.Errors)
	}
	if _, ok := env.Errors["ctaLink"]; !ok {
		t.Fatalf("missing ctaLink error, got %v", env.Errors)
	}

	if saved, _ := ts.content.Hero(context.Background()); saved != nil {
		t.Fatalf("invalid hero was saved")
	}
}

func TestPutHeroMalformedJSON(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPut, "/api/admin/content/hero", []byte("{not json"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckHeroField(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/admin/content/hero/check-field",
		[]byte(`{"path":"greeting.en","value":""}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var check struct {
		Key     string `json:"key"`
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &check); err != nil {
		t.Fatalf("decode check: %v", err)
	}
	if check.Valid {
		t.Fatalf("empty greeting reported valid")
	}
	if check.Key != "greeting_en" {
		t.Fatalf("key = %q, want greeting_en", check.Key)
	}

	rec = ts.do(t, http.MethodPost, "/api/admin/content/hero/check-field",
		[]byte(`{"path":"greeting.en","value":"Hello"}`))
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &check); err != nil {
		t.Fatalf("decode check: %v", err)
	}
	if !check.Valid {
		t.Fatalf("valid greeting rejected: %s", check.Message)
	}
}

func TestPutServicesCollection(t *testing.T) {
	ts := newTestServer(t)
	list := []domain.Service{{
		ID:          "svc-1",
		Title:       domain.BilingualText{Vi: "Phát triển web", En: "Web development"},
		Description: domain.BilingualText{Vi: "Ứng dụng web", En: "Web apps"},
		Color:       "#3B82F6",
		BgColor:     "#EFF6FF",
	}}

	rec := ts.do(t, http.MethodPut, "/api/admin/content/services", marshal(t, list))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/admin/content/services", nil)
	var got []domain.Service
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &got); err != nil {
		t.Fatalf("decode services: %v", err)
	}
	if len(got) != 1 || got[0].ID != "svc-1" {
		t.Fatalf("services = %+v", got)
	}
}

func TestPublishBlogPost(t *testing.T) {
	ts := newTestServer(t)
	posts := []domain.BlogPost{{
		ID:      "post-1",
		Title:   domain.BilingualText{Vi: "Bài đầu tiên", En: "First post"},
		Excerpt: domain.BilingualText{Vi: "Tóm tắt", En: "Summary"},
		Content: domain.BilingualText{Vi: "Nội dung", En: "Content"},
		Status:  domain.BlogDraft,
		Tags:    []string{"go"},
	}}
	if err := ts.content.SaveBlogPosts(context.Background(), posts); err != nil {
		t.Fatalf("seed posts: %v", err)
	}

	rec := ts.do(t, http.MethodPost, "/api/admin/content/blog/post-1/publish", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	saved, err := ts.content.BlogPosts(context.Background())
	if err != nil {
		t.Fatalf("read posts: %v", err)
	}
	if saved[0].Status != domain.BlogPublished {
		t.Fatalf("status = %q, want published", saved[0].Status)
	}
	if saved[0].PublishDate.IsZero() {
		t.Fatalf("publish date not stamped")
	}
}

func TestPublishUnknownBlogPost(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/admin/content/blog/nope/publish", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPatchSettings(t *testing.T) {
	ts := newTestServer(t)
	settings := domain.SystemSettings{
		DefaultLanguage: domain.LanguageVi,
		DefaultTheme:    domain.ThemeLight,
		ColorPalette:    []string{"#1E293B", "#3B82F6", "#F59E0B", "#FFFFFF"},
	}
	if err := ts.content.SaveSettings(context.Background(), settings); err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	rec := ts.do(t, http.MethodPatch, "/api/admin/content/settings",
		[]byte(`{"defaultTheme":"dark","bogus":"ignored"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	saved, _ := ts.content.Settings(context.Background())
	if saved.DefaultTheme != domain.ThemeDark {
		t.Fatalf("theme = %q, want dark", saved.DefaultTheme)
	}
	if saved.DefaultLanguage != domain.LanguageVi {
		t.Fatalf("language changed by unrelated patch")
	}
}

func TestExportDownload(t *testing.T) {
	ts := newTestServer(t)
	if err := ts.content.SaveHero(context.Background(), validHero()); err != nil {
		t.Fatalf("seed hero: %v", err)
	}

	rec := ts.do(t, http.MethodGet, "/api/admin/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Fatalf("Content-Disposition = %q", got)
	}
	var doc domain.ExportDocument
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.Data.Hero == nil || doc.Data.Hero.Name != "Anh Đặng" {
		t.Fatalf("export missing hero")
	}
}

func TestImportRoundTripOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	if err := ts.content.SaveHero(context.Background(), validHero()); err != nil {
		t.Fatalf("seed hero: %v", err)
	}
	artifact := ts.do(t, http.MethodGet, "/api/admin/export", nil).Body.Bytes()

	other := newTestServer(t)
	rec := other.do(t, http.MethodPost, "/api/admin/import", artifact)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	hero, err := other.content.Hero(context.Background())
	if err != nil || hero == nil {
		t.Fatalf("imported hero missing: %v", err)
	}
	if hero.Name != "Anh Đặng" {
		t.Fatalf("imported name = %q", hero.Name)
	}
}

func TestImportRejectsInvalidArtifact(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/admin/import", []byte(`{"data":{}}`))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestImportRejectsUnknownMode(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/admin/import?mode=sideways", []byte(`{}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestValidateImportEndpoint(t *testing.T) {
	ts := newTestServer(t)
	if err := ts.content.SaveHero(context.Background(), validHero()); err != nil {
		t.Fatalf("seed hero: %v", err)
	}
	artifact := ts.do(t, http.MethodGet, "/api/admin/export", nil).Body.Bytes()

	rec := ts.do(t, http.MethodPost, "/api/admin/import/validate", artifact)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid artifact status = %d", rec.Code)
	}

	if hero, _ := ts.content.Hero(context.Background()); hero == nil {
		t.Fatalf("validate must not touch content")
	}

	rec = ts.do(t, http.MethodPost, "/api/admin/import/validate", []byte(`not json`))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid artifact status = %d, want 422", rec.Code)
	}
}

func TestBackupCreateListRestore(t *testing.T) {
	ts := newTestServer(t)
	if err := ts.content.SaveHero(context.Background(), validHero()); err != nil {
		t.Fatalf("seed hero: %v", err)
	}

	rec := ts.do(t, http.MethodPost, "/api/admin/backups", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/admin/backups", nil)
	var infos []backup.BackupInfo
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &infos); err != nil {
		t.Fatalf("decode backups: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("backups = %d, want 1", len(infos))
	}

	mutated := validHero()
	mutated.Name = "Người khác"
	if err := ts.content.SaveHero(context.Background(), mutated); err != nil {
		t.Fatalf("mutate hero: %v", err)
	}

	body := marshal(t, map[string]string{"key": infos[0].Key})
	rec = ts.do(t, http.MethodPost, "/api/admin/backups/restore", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("restore status = %d, body %s", rec.Code, rec.Body.String())
	}

	hero, _ := ts.content.Hero(context.Background())
	if hero == nil || hero.Name != "Anh Đặng" {
		t.Fatalf("restore did not revert hero")
	}
}

func TestRestoreUnknownBackup(t *testing.T) {
	ts := newTestServer(t)
	body := []byte(`{"key":"songngu:backup:manual:0000000000000"}`)
	rec := ts.do(t, http.MethodPost, "/api/admin/backups/restore", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUploadAndListImages(t *testing.T) {
	ts := newTestServer(t)
	img := domain.StoredImage{
		Category: "projects",
		Filename: "screenshot.png",
		Data:     "data:image/png;base64,aGVsbG8=",
	}

	rec := ts.do(t, http.MethodPost, "/api/admin/images/", marshal(t, img))
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/admin/images/?category=projects", nil)
	var got []domain.StoredImage
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &got); err != nil {
		t.Fatalf("decode images: %v", err)
	}
	if len(got) != 1 || got[0].Filename != "screenshot.png" {
		t.Fatalf("images = %+v", got)
	}
	if got[0].ID == "" {
		t.Fatalf("image id not assigned")
	}
}

func TestUploadImageRequiresData(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/admin/images/", []byte(`{"filename":"a.png"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteImage(t *testing.T) {
	ts := newTestServer(t)
	stored, _, err := ts.images.Upload(context.Background(), domain.StoredImage{
		Category: "blog",
		Filename: "cover.jpg",
		Data:     "data:image/jpeg;base64,Zm9v",
	})
	if err != nil {
		t.Fatalf("seed image: %v", err)
	}

	rec := ts.do(t, http.MethodDelete, "/api/admin/images/"+stored.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = ts.do(t, http.MethodDelete, "/api/admin/images/"+stored.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestPortfolioLocalized(t *testing.T) {
	ts := newTestServer(t)
	if err := ts.content.SaveHero(context.Background(), validHero()); err != nil {
		t.Fatalf("seed hero: %v", err)
	}

	rec := ts.do(t, http.MethodGet, "/api/portfolio?lang=en", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var data struct {
		Language string `json:"language"`
		Hero     struct {
			Greeting string `json:"greeting"`
		} `json:"hero"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &data); err != nil {
		t.Fatalf("decode portfolio: %v", err)
	}
	if data.Language != "en" {
		t.Fatalf("language = %q, want en", data.Language)
	}
	if data.Hero.Greeting != "Hello" {
		t.Fatalf("greeting = %q, want English text", data.Hero.Greeting)
	}
}

func TestPortfolioDefaultsToConfiguredLanguage(t *testing.T) {
	ts := newTestServer(t)
	if err := ts.content.SaveHero(context.Background(), validHero()); err != nil {
		t.Fatalf("seed hero: %v", err)
	}

	for _, target := range []string{"/api/portfolio", "/api/portfolio?lang=xx"} {
		rec := ts.do(t, http.MethodGet, target, nil)
		var data struct {
			Language string `json:"language"`
		}
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &data); err != nil {
			t.Fatalf("%s: decode portfolio: %v", target, err)
		}
		if data.Language != "vi" {
			t.Fatalf("%s: language = %q, want vi default", target, data.Language)
		}
	}
}

func TestTranslationsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	if err := ts.content.SaveHero(context.Background(), validHero()); err != nil {
		t.Fatalf("seed hero: %v", err)
	}

	rec := ts.do(t, http.MethodGet, "/api/translations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var table map[string]map[string]string
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &table); err != nil {
		t.Fatalf("decode translations: %v", err)
	}
	if table["vi"]["hero.greeting"] != "Xin chào" {
		t.Fatalf("vi greeting = %q", table["vi"]["hero.greeting"])
	}
	if table["en"]["hero.greeting"] != "Hello" {
		t.Fatalf("en greeting = %q", table["en"]["hero.greeting"])
	}
}
