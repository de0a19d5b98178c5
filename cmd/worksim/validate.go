package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed scenario.schema.json
var scenarioSchema string

// Scenario is a validated workload description.
type Scenario struct {
	Name  string    `json:"name"`
	Tasks []SimTask `json:"tasks"`
}

// SimTask describes one simulated unit of work.
type SimTask struct {
	ID         string `json:"id"`
	DurationMS int    `json:"duration_ms"`
	Priority   int    `json:"priority"`
	Fail       bool   `json:"fail"`
}

func compileScenarioSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("scenario.schema.json", strings.NewReader(scenarioSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("scenario.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// decodeScenario checks raw against the schema and then decodes it
// strictly, so typos in field names fail loudly instead of silently
// falling back to zero values.
func decodeScenario(raw []byte) (Scenario, error) {
	var sc Scenario

	schema, err := compileScenarioSchema()
	if err != nil {
		return sc, err
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return sc, fmt.Errorf("parse scenario: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return sc, fmt.Errorf("validate scenario: %w", err)
	}

	if err := strictUnmarshal(raw, &sc); err != nil {
		return sc, fmt.Errorf("decode scenario: %w", err)
	}
	return sc, nil
}

func strictUnmarshal(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return fmt.Errorf("unexpected trailing JSON payload")
	}
	return nil
}
