package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-dateinput/pkg/config"
)

// ExtensionKey is the schema extension holding widget settings.
const ExtensionKey = "x-date-input"

// dateFormat is the schema format that marks a date input.
const dateFormat = "date"

type extension struct {
	Name                string `json:"name"`
	MinDate             string `json:"minDate"`
	MaxDate             string `json:"maxDate"`
	MinDateErrorContent string `json:"minDateErrorContent"`
	MaxDateErrorContent string `json:"maxDateErrorContent"`
	IsDateOfBirth       bool   `json:"isDateOfBirth"`
}

// WidgetsFromDocument returns one widget per date property found in request
// bodies, keyed by "<operationId>.<property>". Operations without an id are
// keyed by "<method>:<path>". Each widget is validated like a config file
// widget.
func WidgetsFromDocument(ctx context.Context, raw []byte) (map[string]config.Widget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	base, err := config.Default()
	if err != nil {
		return nil, err
	}

	widgets := make(map[string]config.Widget)
	if doc.Paths == nil {
		return widgets, nil
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			opID := op.OperationID
			if opID == "" {
				opID = strings.ToLower(method) + ":" + path
			}
			if err := collect(widgets, base, opID, requestSchema(op.RequestBody)); err != nil {
				return nil, err
			}
		}
	}
	return widgets, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func collect(target map[string]config.Widget, base *config.Config, opID string, schema *openapi3.Schema) error {
	if schema == nil {
		return nil
	}
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil || ref.Value.Format != dateFormat {
			continue
		}
		key := opID + "." + name
		widget, err := widgetFromSchema(base.Widget, name, ref.Value)
		if err != nil {
			return fmt.Errorf("openapi: %s: %w", key, err)
		}

		candidate := *base
		candidate.Widget = widget
		if err := candidate.Validate(); err != nil {
			return fmt.Errorf("openapi: %s: %w", key, err)
		}
		target[key] = widget
	}
	return nil
}

func widgetFromSchema(widget config.Widget, property string, schema *openapi3.Schema) (config.Widget, error) {
	widget.Name = property
	if schema.Title != "" {
		widget.Name = schema.Title
	}
	widget.ReadOnly = schema.ReadOnly

	raw, ok := schema.Extensions[ExtensionKey]
	if !ok || raw == nil {
		return widget, nil
	}
	// extension values arrive as decoded JSON or raw messages depending on
	// how the document was loaded; a JSON round trip covers both.
	data, err := json.Marshal(raw)
	if err != nil {
		return widget, fmt.Errorf("encode %s: %w", ExtensionKey, err)
	}
	var ext extension
	if err := json.Unmarshal(data, &ext); err != nil {
		return widget, fmt.Errorf("decode %s: %w", ExtensionKey, err)
	}

	if ext.Name != "" {
		widget.Name = ext.Name
	}
	widget.MinDate = ext.MinDate
	widget.MaxDate = ext.MaxDate
	widget.DateOfBirth = ext.IsDateOfBirth
	if ext.MinDateErrorContent != "" {
		widget.MinDateErrorContent = ext.MinDateErrorContent
	}
	if ext.MaxDateErrorContent != "" {
		widget.MaxDateErrorContent = ext.MaxDateErrorContent
	}
	return widget, nil
}
