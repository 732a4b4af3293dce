// Command forecast avalia um arquivo YAML de cenário sem precisar da API.
//
//	forecast -file cenario.yaml [-breakdown] [-json]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/forecasting"
	"github.com/vfg2006/goal-tracker-api/pkg/log"
	"github.com/vfg2006/goal-tracker-api/pkg/utils"
	"gopkg.in/yaml.v3"
)

// scenarioFile é o formato do arquivo lido pela CLI
type scenarioFile struct {
	Name           string         `yaml:"name"`
	Year           int            `yaml:"year"`
	ConversionRate float64        `yaml:"conversionRate"`
	AvgMonthlyFee  string         `yaml:"avgMonthlyFee"`
	SpecsPerMonth  map[string]int `yaml:"specsPerMonth"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.L.WithError(err).Fatal("forecast: falha ao avaliar cenário")
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("forecast", flag.ContinueOnError)
	path := fs.String("file", "", "arquivo YAML do cenário")
	breakdown := fs.Bool("breakdown", false, "imprime o detalhamento mensal")
	asJSON := fs.Bool("json", false, "imprime outputs e detalhamento em JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("parâmetro -file é obrigatório")
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	name, inputs, err := loadScenario(f)
	if err != nil {
		return err
	}

	outputs := forecasting.CalculateForecast(inputs)

	if *asJSON {
		doc := map[string]any{"name": name, "inputs": inputs, "outputs": outputs}
		if *breakdown {
			doc["breakdown"] = forecasting.CalculateMonthlyBreakdown(inputs)
		}

		pretty, err := utils.PrettyJson(doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, pretty)
		return nil
	}

	printOutputs(out, name, inputs, outputs)
	if *breakdown {
		printBreakdown(out, forecasting.CalculateMonthlyBreakdown(inputs))
	}

	return nil
}

func loadScenario(r io.Reader) (string, domain.ScenarioInputs, error) {
	var (
		file   scenarioFile
		inputs domain.ScenarioInputs
	)

	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return "", inputs, fmt.Errorf("erro ao ler YAML: %w", err)
	}

	specs, err := domain.MonthlySpecsFromMap(file.SpecsPerMonth)
	if err != nil {
		return "", inputs, err
	}

	fee, err := decimal.NewFromString(file.AvgMonthlyFee)
	if err != nil {
		return "", inputs, fmt.Errorf("%w: %s", domain.ErrInvalidMonthlyFee, file.AvgMonthlyFee)
	}

	inputs = domain.ScenarioInputs{
		SpecsPerMonth:  specs,
		ConversionRate: file.ConversionRate,
		AvgMonthlyFee:  fee,
	}

	if err := inputs.Validate(); err != nil {
		return "", inputs, err
	}

	name := file.Name
	if file.Year > 0 {
		name = fmt.Sprintf("%s (%d)", name, file.Year)
	}

	return name, inputs, nil
}

func printOutputs(out io.Writer, name string, inputs domain.ScenarioInputs, outputs domain.ScenarioOutputs) {
	fmt.Fprintf(out, "Cenário: %s\n", name)
	fmt.Fprintf(out, "Conversão: %s  Fee médio: %s\n\n",
		utils.FormatPercentage(decimal.NewFromFloat(inputs.ConversionRate)), utils.FormatCurrencyFull(inputs.AvgMonthlyFee))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tQ1\tQ2\tQ3\tQ4\t")
	fmt.Fprintf(tw, "Trimestral\t%s\t%s\t%s\t%s\t\n",
		utils.FormatCurrency(outputs.QuarterlyRevenue.Q1),
		utils.FormatCurrency(outputs.QuarterlyRevenue.Q2),
		utils.FormatCurrency(outputs.QuarterlyRevenue.Q3),
		utils.FormatCurrency(outputs.QuarterlyRevenue.Q4),
	)
	fmt.Fprintf(tw, "Acumulado\t%s\t%s\t%s\t%s\t\n",
		utils.FormatCurrency(outputs.CumulativeRevenue.Q1),
		utils.FormatCurrency(outputs.CumulativeRevenue.Q2),
		utils.FormatCurrency(outputs.CumulativeRevenue.Q3),
		utils.FormatCurrency(outputs.CumulativeRevenue.Q4),
	)
	tw.Flush()

	fmt.Fprintf(out, "\nReceita anual:      %s\n", utils.FormatCurrencyFull(outputs.AnnualRevenue))
	fmt.Fprintf(out, "Receita contratada: %s\n", utils.FormatCurrencyFull(outputs.BookedRevenue))
	fmt.Fprintf(out, "Specs: %d  Conversões: %d  Contratadas: %d  ACV médio: %s\n",
		outputs.TotalSpecs, outputs.TotalConversions, outputs.BookedConversions, utils.FormatCurrency(outputs.AvgACV))
}

func printBreakdown(out io.Writer, months []domain.MonthBreakdown) {
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Mês\tSpecs\tConversões\tClientes\tCatch-up\tRecorrente\tTotal\tAcumulado\t")
	for _, m := range months {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t\n",
			m.Key, m.SpecsSigned, m.Conversions, m.ActiveClients,
			utils.FormatCurrency(m.CatchUpRevenue),
			utils.FormatCurrency(m.RecurringRevenue),
			utils.FormatCurrency(m.TotalRevenue),
			utils.FormatCurrency(m.CumulativeRevenue),
		)
	}
	tw.Flush()
}
