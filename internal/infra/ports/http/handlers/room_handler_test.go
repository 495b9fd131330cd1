package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/paroles-live/paroles/internal/infra/adapters/memory"
	"github.com/paroles-live/paroles/internal/infra/ports/http/handlers"
)

func TestRoomStateMissingParameter(t *testing.T) {
	h := handlers.NewRoomHandler(memory.NewRoomRepository())

	req, rec := jsonRequest(http.MethodGet, "/api/state", "")
	if err := h.GetState(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}

	req, rec = jsonRequest(http.MethodPost, "/api/state", `{"a":1}`)
	if err := h.UpdateState(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
}

func TestRoomStateUpdateThenGet(t *testing.T) {
	rooms := memory.NewRoomRepository()
	h := handlers.NewRoomHandler(rooms)

	req, rec := jsonRequest(http.MethodPost, "/api/state?room=abc", `{"song_id":"my-song"}`)
	if err := h.UpdateState(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	req, rec = jsonRequest(http.MethodPost, "/api/state?room=abc", `{"score":3}`)
	if err := h.UpdateState(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}

	req, rec = jsonRequest(http.MethodGet, "/api/state?room=abc", "")
	if err := h.GetState(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("GetState: %v", err)
	}

	var state map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if state["song_id"] != "my-song" {
		t.Fatalf("merge dropped song_id: %v", state)
	}
	if state["score"] != float64(3) {
		t.Fatalf("merge missed score: %v", state)
	}
	if state["room_id"] != "abc" {
		t.Fatalf("room_id not stamped: %v", state)
	}
}

func TestRoomStateInvalidBody(t *testing.T) {
	h := handlers.NewRoomHandler(memory.NewRoomRepository())

	req, rec := jsonRequest(http.MethodPost, "/api/state?room=abc", `{"broken`)
	if err := h.UpdateState(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
}

func TestRoomCheckNormalizesCase(t *testing.T) {
	rooms := memory.NewRoomRepository()
	rooms.UpdateState("quiznight", nil)

	h := handlers.NewRoomHandler(rooms)

	req, rec := jsonRequest(http.MethodGet, "/api/room/check?room=QuizNight", "")
	if err := h.Check(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("Check: %v", err)
	}

	var resp struct {
		RoomID string `json:"room_id"`
		Exists bool   `json:"exists"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.RoomID != "quiznight" || !resp.Exists {
		t.Fatalf("unexpected check result: %+v", resp)
	}
}

func TestRoomList(t *testing.T) {
	rooms := memory.NewRoomRepository()
	rooms.UpdateState("abc", map[string]any{"song_title": "My Song"})

	h := handlers.NewRoomHandler(rooms)

	req, rec := jsonRequest(http.MethodGet, "/api/rooms", "")
	if err := h.List(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("List: %v", err)
	}

	var resp struct {
		Rooms []struct {
			RoomID string `json:"room_id"`
			Song   string `json:"song"`
			Active bool   `json:"active"`
		} `json:"rooms"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %+v", resp)
	}
	if resp.Rooms[0].RoomID != "abc" || resp.Rooms[0].Song != "My Song" || !resp.Rooms[0].Active {
		t.Fatalf("unexpected room info: %+v", resp.Rooms[0])
	}
}
