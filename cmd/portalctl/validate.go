package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/domain/clients"
	"pet-care-portal/internal/domain/invoices"
	"pet-care-portal/internal/domain/modrequests"
	"pet-care-portal/internal/domain/questionnaires"
	"pet-care-portal/internal/domain/reports"
	"pet-care-portal/internal/domain/reviews"
	"pet-care-portal/internal/domain/sessions"
	"pet-care-portal/internal/schema"
)

type variant string

const (
	variantBase   variant = "base"
	variantInsert variant = "insert"
	variantUpdate variant = "update"
)

type parseFunc func([]byte) (any, error)

func parser[T any](s *schema.Schema[T]) parseFunc {
	return func(data []byte) (any, error) {
		p, err := s.Parse(data)
		if err != nil {
			return nil, err
		}
		return p.Value, nil
	}
}

// variants arma base / insert / update de un schema.
func variants[T any](base, insert *schema.Schema[T]) map[variant]parseFunc {
	return map[variant]parseFunc{
		variantBase:   parser(base),
		variantInsert: parser(insert),
		variantUpdate: parser(base.Partial()),
	}
}

var entities = map[string]map[variant]parseFunc{
	"client":               variants(clients.Schema, clients.InsertSchema),
	"animal":               variants(animals.Schema, animals.InsertSchema),
	"modification_request": variants(modrequests.Schema, modrequests.InsertSchema),
	"session":              variants(sessions.Schema, sessions.InsertSchema),
	"invoice":              variants(invoices.Schema, invoices.InsertSchema),
	"questionnaire":        variants(questionnaires.Schema, questionnaires.InsertSchema),
	"review":               variants(reviews.Schema, reviews.InsertSchema),
	"report":               variants(reports.Schema, reports.InsertSchema),
}

func entityNames() []string {
	out := make([]string, 0, len(entities))
	for name := range entities {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var validateVariant string

var validateCmd = &cobra.Command{
	Use:   "validate <entity> <file|->",
	Short: "Validate a JSON payload against an entity schema",
	Long: "Validates a JSON payload against an entity schema.\n\nEntities: " +
		strings.Join(entityNames(), ", ") + ".\nUse - to read the payload from stdin.",
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateVariant, "variant", string(variantBase), "Schema variant: base, insert or update")
}

type validationReport struct {
	Valid  bool           `json:"valid"`
	Schema string         `json:"schema,omitempty"`
	Value  any            `json:"value,omitempty"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	byVariant, ok := entities[args[0]]
	if !ok {
		return fmt.Errorf("unknown entity %q (one of: %s)", args[0], strings.Join(entityNames(), ", "))
	}
	parse, ok := byVariant[variant(validateVariant)]
	if !ok {
		return fmt.Errorf("unknown variant %q (base, insert or update)", validateVariant)
	}

	data, err := readInput(cmd.InOrStdin(), args[1])
	if err != nil {
		return err
	}

	rep, err := validatePayload(parse, data)
	if err != nil {
		return err
	}
	if err := render(cmd.OutOrStdout(), outputFormat, rep); err != nil {
		return err
	}
	if !rep.Valid {
		return errors.New("payload is not valid")
	}
	return nil
}

// validatePayload solo devuelve error si el payload no es JSON; los issues van en el reporte.
func validatePayload(parse parseFunc, data []byte) (validationReport, error) {
	v, err := parse(data)
	if err == nil {
		return validationReport{Valid: true, Value: v}, nil
	}
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		return validationReport{Valid: false, Schema: ve.Schema, Issues: ve.Issues}, nil
	}
	return validationReport{}, err
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}
