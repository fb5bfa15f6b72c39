package service

import (
	"context"
	"fmt"

	"maison/internal/concierge/core"
	"maison/internal/concierge/flows"
	"maison/pkg/client"
	"maison/pkg/logger"
)

type ConciergeService struct {
	engine *core.Engine
	client *client.Client
	log    *logger.Logger
}

func NewConciergeService(client *client.Client, log *logger.Logger) *ConciergeService {
	return &ConciergeService{
		engine: core.NewEngine(
			&flows.BookFacility{},
			&flows.DayAvailability{},
		),
		client: client,
		log:    log,
	}
}

func (s *ConciergeService) ExecuteFlow(ctx context.Context, flowName string, input map[string]any) (map[string]any, error) {
	flowCtx := core.NewFlowContext(ctx, input, s.client)
	if err := s.engine.Run(flowName, flowCtx); err != nil {
		return nil, fmt.Errorf("flow execution failed: %w", err)
	}
	return flowCtx.Output, nil
}

func (s *ConciergeService) AvailableFlows() []string {
	return s.engine.FlowNames()
}
