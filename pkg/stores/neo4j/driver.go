package neo4j

import (
	"context"
	"time"

	sdk "github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const defaultTimeout = 5 * time.Second

// driverRunner runs statements through the official driver.
type driverRunner struct {
	driver   sdk.DriverWithContext
	database string
}

func (runner *driverRunner) Read(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	return runner.execute(ctx, query, params, sdk.ExecuteQueryWithReadersRouting())
}

func (runner *driverRunner) Write(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	return runner.execute(ctx, query, params, sdk.ExecuteQueryWithWritersRouting())
}

func (runner *driverRunner) Close(ctx context.Context) error {
	return runner.driver.Close(ctx)
}

func (runner *driverRunner) execute(
	ctx context.Context, query string, params map[string]any, routing sdk.ExecuteQueryConfigurationOption,
) ([]map[string]any, error) {
	options := []sdk.ExecuteQueryConfigurationOption{routing}

	if runner.database != "" {
		options = append(options, sdk.ExecuteQueryWithDatabase(runner.database))
	}

	result, err := sdk.ExecuteQuery(ctx, runner.driver, query, params, sdk.EagerResultTransformer, options...)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]any, 0, len(result.Records))

	for _, record := range result.Records {
		records = append(records, record.AsMap())
	}

	return records, nil
}
