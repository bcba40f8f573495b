package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/reqsift/reqsift/internal/model"
	"github.com/reqsift/reqsift/internal/pipeline"
	"github.com/spf13/cobra"
)

// demoDescription is the fixed example used by the demo command.
const demoDescription = `
A laundromat provides self-service washing and drying machines for customers. Customers can walk in and use available machines or reserve a machine in advance through an online booking system. Each washing machine and dryer has a unique identifier. Customers must select a machine, choose a wash or dry cycle, and make a payment before starting the machine. Payments can be made using coins, a prepaid card, or an online payment system.

Once the machine is started, the system displays the remaining time for the cycle. Customers can check the status of their machine using a mobile app or a kiosk at the laundromat. If a machine finishes and the laundry is not removed within 10 minutes, the system sends a reminder notification to the customer. If the machine is still occupied after 30 minutes, staff may move the laundry to a designated area.

The laundromat also offers a drop-off service where customers can leave their laundry with an attendant, who will wash, dry, and fold the clothes. The system tracks drop-off orders, assigns them to available attendants, and notifies customers when their laundry is ready for pickup.

The laundromat system also maintains a maintenance log for each machine, automatically flagging machines that require servicing based on error reports or usage counts. Staff can update the status of machines and schedule repairs.
`

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Extract requirements from the built-in example description",
	Long: `Demo runs the extraction pipeline over a built-in laundromat system
description and prints the resulting requirements, grouped by stakeholder.

Useful as a smoke test and as a quick look at the output format.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extractor, err := pipeline.NewExtractor(model.DefaultConfig())
	if err != nil {
		return err
	}

	requirements, err := extractor.ExtractAndFormat(ctx, demoDescription)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	for i, req := range requirements {
		fmt.Printf("%d. %s\n", i+1, req)
	}
	return nil
}
