package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/services"
)

// digestView is the printable form of a digest.
type digestView struct {
	ResourceExternalID         string            `json:"resource_external_id"`
	ResourceType               string            `json:"resource_type"`
	ParentResourceExternalID   string            `json:"parent_resource_external_id,omitempty"`
	MostRecentSalientEventType string            `json:"most_recent_salient_event_type,omitempty"`
	State                      string            `json:"state"`
	FirstEventDate             time.Time         `json:"first_event_date"`
	MostRecentEventDate        time.Time         `json:"most_recent_event_date"`
	EventCount                 int               `json:"event_count"`
	EventTypes                 []string          `json:"event_types"`
	Fields                     domain.Payload    `json:"fields"`
	Metadata                   map[string]string `json:"metadata,omitempty"`
}

func newDigestView(d *domain.EventDigest) digestView {
	return digestView{
		ResourceExternalID:         d.ResourceExternalID,
		ResourceType:               string(d.ResourceType),
		ParentResourceExternalID:   d.ParentResourceExternalID,
		MostRecentSalientEventType: d.MostRecentSalientEventType,
		State:                      string(d.State),
		FirstEventDate:             d.FirstEventDate,
		MostRecentEventDate:        d.MostRecentEventDate,
		EventCount:                 d.EventCount,
		EventTypes:                 d.EventTypes,
		Fields:                     d.Fields,
		Metadata:                   d.Metadata,
	}
}

func replayCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "replay [external-id]",
		Short: "Rebuild a transaction snapshot from its stored events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), cmd, func(opts *services.ServiceOptions) error {
				if dryRun {
					tx, digest, err := opts.ReplayTransaction.Preview(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), map[string]interface{}{
						"transaction": tx,
						"digest":      newDigestView(digest),
					})
				}

				tx, err := opts.ReplayTransaction.Execute(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), tx)
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the recomputed snapshot and digest without writing")

	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [external-id]",
		Short: "Show a stored transaction snapshot and its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), cmd, func(opts *services.ServiceOptions) error {
				res, err := opts.GetTransaction.Execute(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"transaction": res.Transaction,
					"metadata":    res.Metadata,
				})
			})
		},
	}
}
