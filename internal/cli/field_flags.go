package cli

import (
	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagNames maps the CLI flag spelling of each editable field.
var flagNames = []struct {
	name  string
	field domain.Field
	usage string
}{
	{"entity", domain.FieldEntityName, "Entity name"},
	{"contact", domain.FieldEntityContact, "Entity contact (enlace)"},
	{"indicator", domain.FieldIndicator, "Indicator the plan addresses"},
	{"input", domain.FieldImprovementInput, "Improvement input"},
	{"type", domain.FieldActionType, "Improvement action type"},
	{"recommended", domain.FieldRecommendedAction, "Recommended action from the quality report"},
	{"proposed", domain.FieldProposedAction, "Proposed improvement action"},
	{"activities", domain.FieldActivitiesDescription, "Description of planned activities"},
	{"evidence", domain.FieldComplianceEvidence, "Compliance evidence"},
	{"start", domain.FieldStartDate, "Start date (YYYY-MM-DD)"},
	{"end", domain.FieldEndDate, "End date (YYYY-MM-DD)"},
	{"report-date", domain.FieldReportDate, "Follow-up report date (YYYY-MM-DD)"},
	{"performed", domain.FieldActivitiesPerformed, "Activities performed this period"},
	{"evidence-file", domain.FieldEvidenceFile, "Follow-up evidence reference"},
	{"status", domain.FieldFollowUpStatus, "Follow-up status: pending, in_progress, finalized"},
	{"observation", domain.FieldFollowUpObservation, "Evaluator observation on the follow-up"},
	{"plan-observation", domain.FieldPlanObservation, "Evaluator observation on the plan"},
}

// registerFieldFlags adds one string flag per editable field and returns
// the value holders.
func registerFieldFlags(cmd *cobra.Command) map[domain.Field]*string {
	values := make(map[domain.Field]*string, len(flagNames))
	for _, fl := range flagNames {
		v := cmd.Flags().String(fl.name, "", fl.usage)
		values[fl.field] = v
	}
	return values
}

// changedFieldFlags collects only the flags the operator actually set, so
// an empty value can still mean "clear this field".
func changedFieldFlags(flags *pflag.FlagSet, values map[domain.Field]*string) map[domain.Field]string {
	out := make(map[domain.Field]string)
	for _, fl := range flagNames {
		if flags.Changed(fl.name) {
			out[fl.field] = *values[fl.field]
		}
	}
	return out
}
