package main

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/janhq/jan-summarizer/pkg/client"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of a summarize request",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := summarizeRequestSchema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func summarizeRequestSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	schema := r.Reflect(&client.SummarizeRequest{})
	schema.Title = "SummarizeRequest"
	schema.Description = "Body of POST /v1/summaries and POST /api/summarize"

	data, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
