package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/matst80/center-finder/pkg/common/jsoncompat"
	"github.com/matst80/center-finder/pkg/content"
	"github.com/matst80/center-finder/pkg/eligibility"
	"github.com/matst80/center-finder/pkg/facet"
	"github.com/matst80/center-finder/pkg/index"
	"github.com/matst80/center-finder/pkg/persistance"
	"github.com/matst80/center-finder/pkg/types"
	"github.com/spf13/cobra"
)

type options struct {
	snapshot string
	endpoint string
	timeout  time.Duration
}

func (o *options) source() content.Source {
	if o.endpoint != "" {
		return content.NewCMSSource(content.NewClient(o.endpoint, o.timeout, nil, 0))
	}
	return persistance.NewPersistance(o.snapshot)
}

func (o *options) view(ctx context.Context) (*index.View, error) {
	snapshot, err := o.source().Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return index.NewView(snapshot), nil
}

// parseFilters reads dim=v1,v2 pairs. Repeating a dimension adds values.
func parseFilters(raw []string, dims []types.DimensionId) (facet.Selection, error) {
	sel := facet.NewSelection()
	for _, f := range raw {
		id, values, found := strings.Cut(f, "=")
		if !found {
			return nil, fmt.Errorf("filter %q is not dimension=value", f)
		}
		dim := types.DimensionId(strings.TrimSpace(id))
		if !slices.Contains(dims, dim) {
			return nil, fmt.Errorf("unknown dimension %q, expected one of %v", dim, dims)
		}
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" && !sel.Has(dim, v) {
				sel.Toggle(dim, v)
			}
		}
	}
	return sel, nil
}

type exploreOutput[T types.Item] struct {
	Total     int             `json:"total"`
	Items     []T             `json:"items"`
	Counts    index.Counts    `json:"counts,omitempty"`
	Selection facet.Selection `json:"selection"`
}

func printResult[T types.Item](out io.Writer, c *index.Collection[T], sel facet.Selection, text string, limit int, withCounts bool) error {
	res := c.Query(sel, text)
	items := res.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	ret := exploreOutput[T]{Total: res.Total, Items: items, Selection: sel}
	if withCounts {
		ret.Counts = res.Counts
	}
	return jsoncompat.NewEncoder(out).Encode(ret)
}

func collectionCmd(opts *options, name string) *cobra.Command {
	var (
		filters []string
		text    string
		limit   int
		counts  bool
	)
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Filter %s and print the matches as json", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := opts.view(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch name {
			case index.ProgramsCollection:
				return runCollection(out, view.Programs, filters, text, limit, counts)
			case index.CentersCollection:
				return runCollection(out, view.Centers, filters, text, limit, counts)
			case index.EventsCollection:
				return runCollection(out, view.Events, filters, text, limit, counts)
			}
			return runCollection(out, view.Memberships, filters, text, limit, counts)
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "dimension=value[,value], repeatable")
	cmd.Flags().StringVar(&text, "q", "", "free text")
	cmd.Flags().IntVar(&limit, "limit", 20, "max items to print, 0 prints all")
	cmd.Flags().BoolVar(&counts, "counts", false, "include option counts")
	return cmd
}

func runCollection[T types.Item](out io.Writer, c *index.Collection[T], filters []string, text string, limit int, counts bool) error {
	sel, err := parseFilters(filters, c.DimensionIds())
	if err != nil {
		return err
	}
	return printResult(out, c, sel, text, limit, counts)
}

func eligibilityCmd() *cobra.Command {
	var income, size, applicationUrl string
	cmd := &cobra.Command{
		Use:   "eligibility",
		Short: "Estimate sliding scale eligibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			estimate, err := eligibility.NewEstimator(applicationUrl).Estimate(income, size)
			if err != nil {
				return err
			}
			return jsoncompat.NewEncoder(cmd.OutOrStdout()).Encode(estimate)
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "income row, 0 is the lowest range")
	cmd.Flags().StringVar(&size, "size", "", "household size")
	cmd.Flags().StringVar(&applicationUrl, "application-url", "", "override the application form link")
	return cmd
}

func snapshotCmd(opts *options) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch every collection and store them as a snapshot file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.endpoint == "" {
				return fmt.Errorf("--endpoint is required")
			}
			snapshot, err := opts.source().Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if err = persistance.NewPersistance(target).SaveSnapshot(snapshot); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %d programs, %d centers and %d memberships to %s\n",
				len(snapshot.Programs), len(snapshot.Centers), len(snapshot.Memberships), target)
			return err
		},
	}
	cmd.Flags().StringVar(&target, "out", persistance.DefaultFile, "snapshot file to write")
	return cmd
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "explore",
		Short:         "Query center, program, membership and event content from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.snapshot, "snapshot", persistance.DefaultFile, "snapshot file to read when no endpoint is given")
	root.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "cms graphql endpoint")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "cms request timeout")

	for _, name := range []string{index.ProgramsCollection, index.CentersCollection, index.MembershipsCollection, index.EventsCollection} {
		root.AddCommand(collectionCmd(opts, name))
	}
	root.AddCommand(eligibilityCmd())
	root.AddCommand(snapshotCmd(opts))
	return root
}
