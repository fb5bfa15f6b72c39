package core

import (
	"context"
	"fmt"

	"maison/pkg/client"
)

// FlowContext carries state through a flow run. Input is the caller's
// payload, Process holds intermediate step results, Output is what the
// caller gets back.
type FlowContext struct {
	Ctx     context.Context
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Client  *client.Client
}

func NewFlowContext(ctx context.Context, input map[string]any, client *client.Client) *FlowContext {
	return &FlowContext{
		Ctx:     ctx,
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Client:  client,
	}
}

// ExtractString reads a required string input.
func (c *FlowContext) ExtractString(key string) (string, error) {
	raw, ok := c.Input[key]
	if !ok {
		return "", MissingParamErr(key)
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", MissingParamErr(key)
	}
	return value, nil
}

func MissingParamErr(paramName string) error {
	return fmt.Errorf("required param [%v] is missing", paramName)
}
