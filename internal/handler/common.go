package handler // handler defines http handlers

import (
    "errors"
    "math"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        if t < 0 {
            break
        }
        return uint64(t), nil
    case int64:
        if t < 0 {
            break
        }
        return uint64(t), nil
    case float64:
        // JWT subjects decode as float64; a negative or NaN claim must
        // not wrap around into a real user ID.
        if t < 0 || math.IsNaN(t) {
            break
        }
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// normalizeTime accepts "HH:MM" or "HH:MM:SS" from a client and
// returns the canonical "HH:MM:SS" form stored in TIME columns. The
// boolean reports whether the input was well-formed.
func normalizeTime(raw string) (string, bool) {
    s := strings.TrimSpace(raw)
    parts := strings.Split(s, ":")
    if len(parts) == 2 {
        parts = append(parts, "00")
    }
    if len(parts) != 3 {
        return "", false
    }
    nums := make([]int, 3)
    for i, p := range parts {
        if len(p) != 2 {
            return "", false
        }
        n, err := strconv.Atoi(p)
        if err != nil {
            return "", false
        }
        nums[i] = n
    }
    if nums[0] > 23 || nums[1] > 59 || nums[2] > 59 {
        return "", false
    }
    return parts[0] + ":" + parts[1] + ":" + parts[2], true
}
