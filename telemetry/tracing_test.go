package telemetry

import (
	"context"
	"testing"
)

func TestSetupWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup("", "weather-fetcher")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestSetupWithEndpoint(t *testing.T) {
	shutdown, err := Setup("http://localhost:9411/api/v2/spans", "weather-fetcher")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestSetupInvalidEndpoint(t *testing.T) {
	if _, err := Setup("::not a url", "weather-fetcher"); err == nil {
		t.Error("expected error for an invalid endpoint")
	}
}
