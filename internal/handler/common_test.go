package handler

import (
    "math"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
)

func TestGetUserID(t *testing.T) {
    tests := []struct {
        name  string
        value interface{}
        want  uint64
        ok    bool
    }{
        {name: "uint64", value: uint64(7), want: 7, ok: true},
        {name: "float64 claim", value: float64(42), want: 42, ok: true},
        {name: "numeric string", value: "9", want: 9, ok: true},
        {name: "negative float wraps nowhere", value: float64(-1)},
        {name: "NaN claim", value: math.NaN()},
        {name: "negative int", value: -3},
        {name: "non-numeric string", value: "abc"},
        {name: "missing", value: nil},
    }
    e := echo.New()
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, "/", nil)
            c := e.NewContext(req, httptest.NewRecorder())
            if tt.value != nil {
                c.Set("user_id", tt.value)
            }
            got, err := getUserID(c)
            if !tt.ok {
                if err == nil {
                    t.Fatalf("getUserID() accepted %#v as %d", tt.value, got)
                }
                return
            }
            if err != nil {
                t.Fatalf("getUserID() = %v", err)
            }
            if got != tt.want {
                t.Errorf("getUserID() = %d, want %d", got, tt.want)
            }
        })
    }
}

func TestNormalizeTime(t *testing.T) {
    tests := []struct {
        in   string
        want string
        ok   bool
    }{
        {in: "10:00", want: "10:00:00", ok: true},
        {in: "10:00:30", want: "10:00:30", ok: true},
        {in: " 09:15 ", want: "09:15:00", ok: true},
        {in: "24:00", ok: false},
        {in: "10:60", ok: false},
        {in: "10", ok: false},
        {in: "1:00", ok: false},
        {in: "10:00:00:00", ok: false},
        {in: "ab:cd", ok: false},
    }
    for _, tt := range tests {
        got, ok := normalizeTime(tt.in)
        if ok != tt.ok {
            t.Errorf("normalizeTime(%q) ok = %v, want %v", tt.in, ok, tt.ok)
            continue
        }
        if ok && got != tt.want {
            t.Errorf("normalizeTime(%q) = %q, want %q", tt.in, got, tt.want)
        }
    }
}
