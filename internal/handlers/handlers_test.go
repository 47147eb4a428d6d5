package handlers

import (
	"encoding/json"
	"html"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/balqony-sitraalu/studio/internal/contact"
	"github.com/balqony-sitraalu/studio/internal/content"
	"github.com/balqony-sitraalu/studio/internal/media"
	"github.com/balqony-sitraalu/studio/internal/storage"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T, endpoint string) *testServer {
	t.Helper()

	site, err := content.Default()
	require.NoError(t, err)

	public := t.TempDir()
	img := imaging.New(900, 600, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	require.NoError(t, os.MkdirAll(filepath.Join(public, "images"), 0755))
	require.NoError(t, imaging.Save(img, filepath.Join(public, "images", "aegon.png")))
	require.NoError(t, os.WriteFile(filepath.Join(public, "robots.txt"), []byte("User-agent: *\n"), 0644))

	visitors := storage.New(0.35, func() *contact.Form {
		return contact.NewForm(contact.NewHTTPSubmitter(endpoint, 5*time.Second), time.Minute)
	})

	h := New(Options{
		Content:         content.NewStaticStore(site),
		Visitors:        visitors,
		Thumbnails:      media.NewThumbnailer(public, t.TempDir()),
		PublicDir:       public,
		VisitorTTL:      time.Hour,
		ResetAfter:      3 * time.Second,
		RevealThreshold: 0.35,
	})

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	return &testServer{
		Server: srv,
		client: &http.Client{
			Jar: newJar(t),
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (s *testServer) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := s.client.Get(s.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (s *testServer) post(t *testing.T, path, contentType, payload string) (*http.Response, string) {
	t.Helper()
	resp, err := s.client.Post(s.URL+path, contentType, strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestPages(t *testing.T) {
	s := newTestServer(t, "")

	tests := []struct {
		path string
		want []string
	}{
		{path: "/", want: []string{`class="hero-letter"`, "Dream. Frame. Deliver."}},
		{path: "/?menu=open", want: []string{`class="menu-panel is-open"`}},
		{path: "/about?open=2", want: []string{`role="dialog"`, "Jithin Mohan", "scroll-locked"}},
		{path: "/hyderabad-nights?open=1&step=prev", want: []string{"Scene 6 of 6", "Dawn of Hope"}},
		{path: "/work?category=documentary&open=2&step=next", want: []string{"Ee Sannivesham", "3 of 6"}},
		{path: "/work?open=2&close=escape", want: []string{`class="page page-work"`}},
		{path: "/contact", want: []string{"<form", "Project Details *"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := s.get(t, tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
			for _, want := range tt.want {
				assert.Contains(t, body, want)
			}
		})
	}

	_, body := s.get(t, "/work?category=Music+Video&open=1")
	assert.NotContains(t, body, `role="dialog"`, "items outside the filter cannot be opened")
}

var stepLink = regexp.MustCompile(`class="modal-(next|prev)" href="([^"]+)"`)

// followStep returns the href of the rendered next or prev link.
func followStep(t *testing.T, body, direction string) string {
	t.Helper()
	for _, m := range stepLink.FindAllStringSubmatch(body, -1) {
		if m[1] == direction {
			return html.UnescapeString(m[2])
		}
	}
	t.Fatalf("Expected a %s link in the open viewer", direction)
	return ""
}

func TestStepLinksCycleUnderFilter(t *testing.T) {
	s := newTestServer(t, "")

	for _, direction := range []string{"next", "prev"} {
		t.Run(direction, func(t *testing.T) {
			_, body := s.get(t, "/work?category=Documentary&open=2")
			require.Contains(t, body, "2 of 6")

			for step := 1; step <= 6; step++ {
				href := followStep(t, body, direction)
				assert.Contains(t, href, "category=Documentary")
				_, body = s.get(t, href)
				require.Contains(t, body, `role="dialog"`, "step %d from %s", step, href)
			}
			assert.Contains(t, body, "2 of 6")
		})
	}

	_, body := s.get(t, "/work?category=Documentary&open=2&step=next")
	require.Contains(t, body, "3 of 6")
	closeHref := html.UnescapeString(regexp.MustCompile(`data-escape-href="([^"]+)"`).FindStringSubmatch(body)[1])
	_, body = s.get(t, closeHref)
	assert.NotContains(t, body, `role="dialog"`)
	assert.NotContains(t, body, "scroll-locked")
}

func TestRevealPersistsPerVisitor(t *testing.T) {
	s := newTestServer(t, "")

	resp, body := s.post(t, "/api/reveal", "application/json", `{"catalog":"work","id":3,"ratio":0.2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"revealed":false,"done":false,"ids":[]}`, body)

	_, body = s.post(t, "/api/reveal", "application/json", `{"catalog":"work","id":3,"ratio":0.5}`)
	assert.JSONEq(t, `{"revealed":true,"done":true,"ids":[3]}`, body)

	_, body = s.post(t, "/api/reveal", "application/json", `{"catalog":"work","id":3,"ratio":0.9}`)
	assert.JSONEq(t, `{"revealed":false,"done":true,"ids":[3]}`, body)

	_, page := s.get(t, "/work")
	assert.Equal(t, 1, strings.Count(page, `class="card reveal is-revealed"`))

	resp, _ = s.post(t, "/api/reveal", "application/json", `{"catalog":"work","id":99,"ratio":0.5}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = s.post(t, "/api/reveal", "application/json", `{"catalog":"nope","id":1,"ratio":0.5}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = s.post(t, "/api/reveal", "application/json", `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogAPI(t *testing.T) {
	s := newTestServer(t, "")

	var out catalogResponse
	_, body := s.get(t, "/api/catalogs/work?category=short+film")
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "Short Film", string(out.Category))
	require.Len(t, out.Items, 1)
	assert.Equal(t, 6, out.Items[0].ID)

	_, body = s.get(t, "/api/catalogs/work?category=Animation")
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Empty(t, out.Items)

	_, body = s.get(t, "/api/catalogs/work")
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Len(t, out.Items, 6)

	resp, _ := s.get(t, "/api/catalogs/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHeroAPI(t *testing.T) {
	s := newTestServer(t, "")

	var out heroResponse
	_, body := s.get(t, "/api/hero")
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "B", out.Rows[0][0].Char)
	assert.InDelta(t, -163.49955392070115, out.Rows[0][0].X, 1e-9)
	assert.Equal(t, int64(280), out.Rows[1][0].DelayMS)
	assert.Equal(t, int64(250), out.Schedule[1].AtMS)
	assert.Equal(t, int64(100), out.Replay[1].AtMS)
}

func TestContactWithoutEndpoint(t *testing.T) {
	s := newTestServer(t, "")

	form := url.Values{
		"name":        {"Ravi"},
		"email":       {"ravi@example.net"},
		"projectType": {"documentary"},
		"message":     {"A short documentary."},
	}
	resp, body := s.post(t, "/contact", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, `value="Ravi"`)

	resp, body = s.post(t, "/api/contact", "application/json", `{"name":"Ravi"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "not set up")
}

func TestContactMissingFields(t *testing.T) {
	s := newTestServer(t, "https://forms.example.net/f/abc")

	resp, body := s.post(t, "/contact", "application/x-www-form-urlencoded", url.Values{"name": {"Ravi"}}.Encode())
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Please fill in all required fields.")

	resp, _ = s.post(t, "/api/contact", "application/json", `{"nickname":"R"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestContactSuccess(t *testing.T) {
	var received contact.Payload
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	s := newTestServer(t, upstream.URL)

	form := url.Values{
		"name":        {"Ravi"},
		"email":       {"ravi@example.net"},
		"projectType": {"documentary"},
		"message":     {"A short documentary."},
	}
	resp, _ := s.post(t, "/contact", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/contact", resp.Header.Get("Location"))
	assert.Equal(t, "Ravi", received.Name)
	assert.Equal(t, "", received.Company)

	_, body := s.get(t, "/contact")
	assert.Contains(t, body, "Thank you!")
	assert.Contains(t, body, `data-reset-after="3000"`)
}

func TestContactAPIReplacesWholeForm(t *testing.T) {
	received := make(chan contact.Payload, 4)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p contact.Payload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		received <- p
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Try again later"}`))
	}))
	defer upstream.Close()

	s := newTestServer(t, upstream.URL)

	full := `{"name":"Ravi","email":"ravi@example.net","company":"Aegon","projectType":"documentary","message":"Hello"}`
	resp, body := s.post(t, "/api/contact", "application/json", full)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Try again later")

	resp, _ = s.post(t, "/api/contact", "application/json", `{"name":"Mallory","nickname":"M"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_, page := s.get(t, "/contact")
	assert.Contains(t, page, `value="Ravi"`, "a rejected request leaves the form untouched")
	assert.NotContains(t, page, "Mallory")

	resp, _ = s.post(t, "/api/contact", "application/json", `{"name":"Ravi","email":"ravi@example.net","projectType":"documentary","message":"Hello"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Len(t, received, 2)
	assert.Equal(t, "Aegon", (<-received).Company)
	assert.Equal(t, "", (<-received).Company, "omitted keys are cleared")
}

func TestStaticAndMedia(t *testing.T) {
	s := newTestServer(t, "")

	resp, body := s.get(t, "/healthcheck")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, body = s.get(t, "/static/site.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "IntersectionObserver")

	resp, _ = s.get(t, "/robots.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.get(t, "/media/thumb/thumb/images/aegon.png")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	img, err := imaging.Decode(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())

	resp, _ = s.get(t, "/media/thumb/huge/images/aegon.png")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = s.get(t, "/media/thumb/thumb/images/missing.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
