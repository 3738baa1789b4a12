package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// numberRoot shows a number and commits n+1 on click.
func numberRoot(initial value.Value, onChanged func(value.Value)) Component {
	return func(s *vango.Scope) *vdom.VNode {
		n := vango.Remember(s, initial.Float())
		return vdom.Div(
			vdom.Span(vdom.Data("role", "view"), vdom.Text(value.FormatNumber(n.Get()))),
			vdom.Button(vdom.Data("role", "add"), vdom.OnClick(func() {
				n.Set(n.Peek() + 1)
				onChanged(value.Number(n.Peek()))
			})),
		)
	}
}

type commitLog struct {
	mu     sync.Mutex
	values []value.Value
}

func (c *commitLog) record(ctx context.Context, v value.Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
	return nil
}

func (c *commitLog) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

func newTestServer(t *testing.T, initial value.Value, commits *commitLog) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(Config{
		Title:    "test",
		Root:     numberRoot,
		Source:   DocumentSourceFunc(func(ctx context.Context) (value.Value, error) { return initial, nil }),
		OnCommit: commits.record,
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return srv, ts
}

var sessionAttr = regexp.MustCompile(`data-session="([0-9a-f]+)"`)

func loadPage(t *testing.T, ts *httptest.Server) (string, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	m := sessionAttr.FindStringSubmatch(string(body))
	if m == nil {
		t.Fatalf("expected session attribute in page: %s", body)
	}
	return string(body), m[1]
}

func dial(t *testing.T, ts *httptest.Server, session string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + session
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg string) serverMessage {
	t.Helper()
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var reply serverMessage
	if err := json.Unmarshal(data, &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	return reply
}

func TestServerPage(t *testing.T) {
	_, ts := newTestServer(t, value.Number(41), &commitLog{})
	body, _ := loadPage(t, ts)

	for _, want := range []string{
		"<title>test</title>",
		`id="jsonedit-root"`,
		`data-role="view"`,
		">41<",
		"new WebSocket",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestServerHealth(t *testing.T) {
	_, ts := newTestServer(t, value.Null(), &commitLog{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestServerWebSocketEvent(t *testing.T) {
	commits := &commitLog{}
	srv, ts := newTestServer(t, value.Number(1), commits)
	body, id := loadPage(t, ts)

	sess, ok := srv.Sessions().Get(id)
	if !ok {
		t.Fatal("expected session registered")
	}
	add := vdom.FindAll(sess.Tree(), vdom.ByData("role", "add"))[0].HID
	if !strings.Contains(body, `data-hid="`+add+`"`) {
		t.Fatalf("expected page to carry hid %s", add)
	}

	conn := dial(t, ts, id)
	reply := roundTrip(t, conn, `{"hid":"`+add+`","type":"click"}`)
	if reply.Error != nil {
		t.Fatalf("unexpected error: %+v", reply.Error)
	}
	if reply.Seq != 1 {
		t.Errorf("expected seq 1, got %d", reply.Seq)
	}
	if !strings.Contains(reply.HTML, ">2<") {
		t.Errorf("expected re-rendered html with 2, got %s", reply.HTML)
	}
	if commits.len() != 1 {
		t.Errorf("expected 1 commit, got %d", commits.len())
	}

	resp, err := http.Get(ts.URL + "/value")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(data)) != "2" {
		t.Errorf("expected /value 2, got %q", data)
	}
}

func TestServerWebSocketUnknownHandler(t *testing.T) {
	_, ts := newTestServer(t, value.Number(1), &commitLog{})
	_, id := loadPage(t, ts)
	conn := dial(t, ts, id)

	reply := roundTrip(t, conn, `{"hid":"h404","type":"click"}`)
	if reply.Error == nil || reply.Error.Code != "E009" {
		t.Fatalf("expected E009 error, got %+v", reply.Error)
	}
	if reply.HTML == "" {
		t.Error("expected current html with a handler miss")
	}

	reply = roundTrip(t, conn, `not json`)
	if reply.Error == nil {
		t.Error("expected error for malformed message")
	}
}

func TestServerWebSocketUnknownSession(t *testing.T) {
	_, ts := newTestServer(t, value.Null(), &commitLog{})
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %v", resp)
	}
}

func TestServerClosesSessionOnDisconnect(t *testing.T) {
	srv, ts := newTestServer(t, value.Null(), &commitLog{})
	_, id := loadPage(t, ts)
	conn := dial(t, ts, id)
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := srv.Sessions().Get(id); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("expected session removed after disconnect")
}

func TestServerRequiresRoot(t *testing.T) {
	srv := New(Config{})
	if _, err := srv.NewSession(context.Background()); err == nil {
		t.Error("expected error without Root")
	}
}

func TestServerSourceError(t *testing.T) {
	failed := stderrors.New("load failed")
	srv := New(Config{
		Root:   numberRoot,
		Source: DocumentSourceFunc(func(ctx context.Context) (value.Value, error) { return value.Value{}, failed }),
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestClientMessageEvent(t *testing.T) {
	m, err := decodeClientMessage([]byte(`{"hid":"h1","type":"keydown","key":"Enter","shift":true}`))
	if err != nil {
		t.Fatal(err)
	}
	k, ok := m.event().Payload.(vango.KeyboardEvent)
	if !ok || k.Key != "Enter" || !k.ShiftKey {
		t.Errorf("unexpected keyboard payload %+v", m.event().Payload)
	}

	m, _ = decodeClientMessage([]byte(`{"hid":"h2","type":"input"}`))
	if s, ok := m.event().Payload.(string); !ok || s != "" {
		t.Errorf("expected empty string payload, got %#v", m.event().Payload)
	}

	if _, err := decodeClientMessage([]byte(`{"type":"click"}`)); err == nil {
		t.Error("expected error without hid")
	}
}
