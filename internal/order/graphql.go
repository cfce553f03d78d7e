package order

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"vitrine/internal/domain"
)

type orderReader interface {
	GetOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*domain.Order, error)
}

// The order subgraph: read-only order queries for the federation
// gateway. The write workflow stays REST-only.
func NewGraphQLHandler(svc orderReader) (http.Handler, error) {
	itemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"productId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"quantity":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"price":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"totalPrice":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"shippingCost": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"status":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"items":        &graphql.Field{Type: graphql.NewList(itemType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, ok := p.Args["id"].(string)
					if !ok {
						return nil, fmt.Errorf("id must be an ID")
					}
					id, err := strconv.ParseUint(raw, 10, 64)
					if err != nil || id == 0 {
						return nil, fmt.Errorf("id must be a positive integer")
					}
					order, err := svc.GetOrderByID(p.Context, uint(id))
					if err != nil {
						return nil, err
					}
					return toGraphQLOrder(order), nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					orders, err := svc.GetOrders(p.Context)
					if err != nil {
						return nil, err
					}
					result := make([]map[string]interface{}, len(orders))
					for i := range orders {
						result[i] = toGraphQLOrder(&orders[i])
					}
					return result, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return nil, err
	}

	return handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	}), nil
}

func toGraphQLOrder(order *domain.Order) map[string]interface{} {
	items := make([]map[string]interface{}, len(order.Items))
	for i, item := range order.Items {
		items[i] = map[string]interface{}{
			"id":        item.ID,
			"productId": item.ProductID,
			"quantity":  item.Quantity,
			"price":     item.Price,
		}
	}

	return map[string]interface{}{
		"id":           order.ID,
		"totalPrice":   order.TotalPrice,
		"shippingCost": order.ShippingCost,
		"status":       order.Status,
		"items":        items,
	}
}
