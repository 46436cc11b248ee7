package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/capacitymarket/capacity-checker/internal/component"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/config"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/database"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/logging"
	"github.com/capacitymarket/capacity-checker/internal/postcode"
	"github.com/capacitymarket/capacity-checker/internal/webui"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import <register.json>",
	Short: "Import components from a capacity market register export",
	Long: `Import components from a JSON export of the capacity market register.
The file must contain an array of component records keyed by the register's
column names ("CMU ID", "Location and Post Code", "Company Name", ...).
Unrecognised keys are preserved as additional data.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		db, err := database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close() //nolint:errcheck // best-effort close on CLI exit

		ctx := cmd.Context()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		return runImport(ctx, db, args[0], logging.New(cfg.Logging, version))
	},
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "delete existing components before importing")
	rootCmd.AddCommand(importCmd)
}

// Register column names mapped onto component fields. Everything else in a
// record lands in AdditionalData.
const (
	colCMUID       = "CMU ID"
	colComponentID = "Component ID"
	colLocation    = "Location and Post Code"
	colDescription = "Description of CMU Components"
	colTechnology  = "Generating Technology Class"
	colCompany     = "Company Name"
	colAuction     = "Auction Name"
	colYear        = "Delivery Year"
	colStatus      = "Status"
	colType        = "Type"
	colCapacity    = "De-Rated Capacity"
)

// runImport loads the register file and writes each record through the
// repository. Records without a CMU ID are skipped with a warning.
func runImport(ctx context.Context, db *database.DB, path string, log *logging.Logger) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return fmt.Errorf("reading register file: %w", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing register file: %w", err)
	}

	postcodes, err := postcode.Load()
	if err != nil {
		return fmt.Errorf("loading postcode directory: %w", err)
	}

	repo := component.NewSQLRepository(db)

	if importReplace {
		n, err := repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clearing components: %w", err)
		}
		log.Info("cleared existing components", "deleted", n)
	}

	imported, skipped := 0, 0
	for i, record := range records {
		c, ok := recordToComponent(record, postcodes)
		if !ok {
			log.Warn("skipping record without CMU ID", "index", i)
			skipped++
			continue
		}
		if err := repo.Create(ctx, c); err != nil {
			log.Warn("skipping record", "index", i, "component_id", c.ComponentID, "error", err)
			skipped++
			continue
		}
		imported++
	}

	log.Info("import complete", "imported", imported, "skipped", skipped, "total", len(records))
	fmt.Printf("imported %d of %d records (%d skipped)\n", imported, len(records), skipped)
	return nil
}

// recordToComponent maps a register record onto a Component. Returns false
// when the record has no usable CMU ID.
func recordToComponent(record map[string]any, postcodes *postcode.Directory) (*component.Component, bool) {
	cmuID := stringField(record, colCMUID)
	if cmuID == "" || cmuID == "N/A" {
		return nil, false
	}

	location := stringField(record, colLocation)
	outward := outwardFromLocation(location)

	c := &component.Component{
		ID:           uuid.NewString(),
		ComponentID:  stringField(record, colComponentID),
		CMUID:        cmuID,
		Location:     location,
		OutwardCode:  outward,
		Description:  stringField(record, colDescription),
		Technology:   stringField(record, colTechnology),
		CompanyName:  stringField(record, colCompany),
		AuctionName:  stringField(record, colAuction),
		DeliveryYear: stringField(record, colYear),
		Status:       stringField(record, colStatus),
		Type:         stringField(record, colType),
	}
	if c.ComponentID == "" {
		// The register has no stable per-component identifier for some
		// years; derive one from the CMU ID and company.
		c.ComponentID = cmuID + "_" + webui.URLSafe(c.CompanyName)
	}
	if outward != "" && c.County == "" && postcodes != nil {
		c.County = postcodes.CountyForPostcode(outward)
	}
	if raw := stringField(record, colCapacity); raw != "" {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64); err == nil && v >= 0 {
			c.DeratedCapacityMW = &v
		}
	}

	mapped := map[string]bool{
		colCMUID: true, colComponentID: true, colLocation: true,
		colDescription: true, colTechnology: true, colCompany: true,
		colAuction: true, colYear: true, colStatus: true, colType: true,
		colCapacity: true,
	}
	for k, v := range record {
		if mapped[k] || v == nil {
			continue
		}
		if c.AdditionalData == nil {
			c.AdditionalData = make(map[string]any)
		}
		c.AdditionalData[k] = v
	}

	return c, true
}

// stringField reads a trimmed string value from a record.
func stringField(record map[string]any, key string) string {
	v, ok := record[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// outwardFromLocation extracts an outward code from a register location
// string. Locations usually end with a full postcode ("... London SW1A 1AA")
// so the last two tokens are tried.
func outwardFromLocation(location string) string {
	fields := strings.Fields(location)
	for i := len(fields) - 1; i >= 0 && i >= len(fields)-2; i-- {
		if oc := component.NormalizeOutwardCode(fields[i]); oc != "" {
			return oc
		}
	}
	return ""
}
