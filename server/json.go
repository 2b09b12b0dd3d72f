package server

import (
	"bytes"
	"net/http"

	j "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// goJSONSerializer renders responses with go-json. Indented output is
// produced by re-indenting the compact encoding.
type goJSONSerializer struct{}

func (goJSONSerializer) Serialize(c echo.Context, i any, indent string) error {
	b, err := j.Marshal(i)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if indent != "" {
		if err := j.Indent(&buf, b, "", indent); err != nil {
			return err
		}
	} else {
		buf.Write(b)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(c.Response())
	return err
}

func (goJSONSerializer) Deserialize(c echo.Context, i any) error {
	err := j.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
