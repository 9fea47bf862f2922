package bundle

import (
	"encoding/json"
	"errors"
	"strconv"

	"cart-bundler/internal/model"
)

// groupTag is the per-line tag written by storefronts using grouped bundles.
type groupTag struct {
	Time *string `json:"time"`
	ID   *int    `json:"id"`
}

// selectTaggedLines returns the lines whose tag value equals the bundle id.
func selectTaggedLines(cart *model.Cart, bundleID int) []model.CartLine {
	want := strconv.Itoa(bundleID)
	lines := make([]model.CartLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if value, ok := line.AttributeValue(); ok && value == want {
			lines = append(lines, line)
		}
	}
	return lines
}

// selectGroupedLines returns the lines whose {time, id} tag names the bundle.
func selectGroupedLines(cart *model.Cart, bundleID int) ([]model.CartLine, error) {
	lines := make([]model.CartLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		tag, ok, err := parseGroupTag(line)
		if err != nil {
			return nil, err
		}
		if ok && tag.id == bundleID {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

type parsedTag struct {
	time string
	id   int
}

// parseGroupTag decodes a line tag. ok is false when the line carries no tag.
func parseGroupTag(line model.CartLine) (parsedTag, bool, error) {
	value, ok := line.AttributeValue()
	if !ok {
		return parsedTag{}, false, nil
	}

	var tag groupTag
	if err := json.Unmarshal([]byte(value), &tag); err != nil {
		return parsedTag{}, false, &DecodeError{Field: "line " + line.ID + " attribute", Err: err}
	}
	if tag.Time == nil || tag.ID == nil {
		return parsedTag{}, false, &DecodeError{
			Field: "line " + line.ID + " attribute",
			Err:   errors.New("time and id are required"),
		}
	}

	return parsedTag{time: *tag.Time, id: *tag.ID}, true, nil
}
