package main

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/queries"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/queries/get_bundle"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/repo"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/usecases/request_propagation"
	"github.com/murkotick/bundle-composition-service/internal/pkg/clock"
	committer "github.com/murkotick/bundle-composition-service/internal/pkg/committer"
)

// bundlectl is the operator CLI: inspect a bundle and trigger content
// propagation for its outdated purchases.
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	app := &cli.App{
		Name:  "bundlectl",
		Usage: "operate on bundle compositions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database",
				Usage:    "Spanner database path",
				EnvVars:  []string{"SPANNER_DATABASE"},
				Required: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "print a bundle with its active items",
				ArgsUsage: "<bundle-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("exactly one bundle id is required", 64)
					}
					return runShow(c.Context, c.String("database"), c.Args().First())
				},
			},
			{
				Name:      "propagate",
				Usage:     "clear the outdated flag and enqueue the propagation job",
				ArgsUsage: "<bundle-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("exactly one bundle id is required", 64)
					}
					return runPropagate(c.Context, c.String("database"), c.Args().First())
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func runShow(ctx context.Context, database, bundleID string) error {
	client, err := spanner.NewClient(ctx, database)
	if err != nil {
		return err
	}
	defer client.Close()

	handler := get_bundle.NewHandler(queries.NewSpannerReadModel(client))
	b, err := handler.Execute(ctx, bundleID)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %q  seller=%s  published=%t  outdated_purchases=%t\n",
		b.BundleID, b.Name, b.SellerID, b.Published, b.HasOutdatedPurchases)
	for _, item := range b.Items {
		if item.DeletedAt != nil {
			continue
		}
		variant := "-"
		if item.VariantID != nil {
			variant = *item.VariantID
		}
		fmt.Printf("  [%d] product=%s variant=%s qty=%d\n",
			item.Position, item.ProductID, variant, item.Quantity)
	}
	return nil
}

func runPropagate(ctx context.Context, database, bundleID string) error {
	client, err := spanner.NewClient(ctx, database)
	if err != nil {
		return err
	}
	defer client.Close()

	interactor := request_propagation.NewInteractor(
		repo.NewBundleRepo(),
		repo.NewOutboxRepo(),
		committer.NewAdapter(client),
		queries.NewSpannerReadModel(client),
		clock.RealClock{},
	)

	if err := interactor.Execute(ctx, request_propagation.Request{BundleID: bundleID}); err != nil {
		return err
	}

	fmt.Printf("propagation job enqueued for %s\n", bundleID)
	return nil
}
