// Package openapi embeds the HTTP contracts of the sales and delivery services.
package openapi

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	//go:embed sales.yaml
	salesDocument []byte

	//go:embed delivery.yaml
	deliveryDocument []byte
)

const (
	SalesName    = "sales"
	DeliveryName = "delivery"
)

func Sales() (*openapi3.T, error) {
	return load(SalesName, salesDocument)
}

func Delivery() (*openapi3.T, error) {
	return load(DeliveryName, deliveryDocument)
}

func load(name string, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load %s openapi document: %w", name, err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate %s openapi document: %w", name, err)
	}
	return doc, nil
}
