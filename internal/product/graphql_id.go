package product

import (
	"fmt"
	"strconv"
)

// graphql-go delivers ID arguments as strings.
func parseGraphQLID(raw interface{}) (int, error) {
	s, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("id must be an ID")
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id must be a positive integer")
	}
	return id, nil
}
