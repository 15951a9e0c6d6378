package middleware

// identity.go defines helper functions shared across middleware files. Currently
// it provides a userID extraction function that reads the user_id value stored
// in the Echo context by JWTAuth. When no user is authenticated, "guest" is
// returned so anonymous traffic shares a single identity bucket.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the request context. JWTAuth stores
// the token subject under "user_id"; depending on how the token was decoded
// the value may be a string or a numeric type, so all are handled here. It
// returns "guest" when no user is authenticated.
func userID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "guest"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case uint64:
        return strconv.FormatUint(t, 10)
    case int64:
        return strconv.FormatInt(t, 10)
    case int:
        return strconv.Itoa(t)
    case float64:
        return strconv.FormatUint(uint64(t), 10)
    }
    return "guest"
}
