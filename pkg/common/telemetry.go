// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package common holds the tracing envelope and tracer provider shared by
// the batch pipeline and the lookup surface.
package common

import (
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// zipkinEndpointEnv overrides the trace collector endpoint. Empty keeps the
// exporter's default (http://localhost:9411/api/v2/spans).
const zipkinEndpointEnv = "ZIPKIN_COLLECTOR_ENDPOINT"

// NewTracerProvider creates a tracer provider exporting spans to Zipkin,
// tagged with the service identity.
func NewTracerProvider(serviceName, environment string, id int64) (*sdktrace.TracerProvider, error) {
	exporter, err := zipkin.New(os.Getenv(zipkinEndpointEnv))
	if err != nil {
		return nil, fmt.Errorf("failed to create zipkin exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("deployment.environment", environment),
		attribute.Int64("service.instance.id", id),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}
