package cmd

import (
	"github.com/huangsam/workbench/core"
	"github.com/huangsam/workbench/internal/outwriter"
	"github.com/huangsam/workbench/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dogsCmd groups the dog registry operations.
var dogsCmd = &cobra.Command{
	Use:   "dogs",
	Short: "List, inspect and edit the dogs registry",
	Long: `Run the dogs registry operations directly against the configured store.

The same rules as the HTTP service apply: every field is required on create,
update only changes the flags that were set, and unknown ids are reported as not found.

Examples:
  # Youngest dogs first
  workbench dogs list --sort age

  # Names containing "to", newest intake first, as JSON
  workbench dogs list --name to --sort intakeDate --order desc --output json

  # Register and then fix a dog
  workbench dogs create --name Toby --breed Beagle --age 3 --weight 12.5 --intake-date 2024-01-10
  workbench dogs update 1 --weight 13`,
}

var dogsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List dogs, optionally filtered and sorted",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeStore, err := openDogService()
		if err != nil {
			return err
		}
		defer closeStore()

		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		sort, _ := flags.GetString("sort")
		order, _ := flags.GetString("order")

		dogs, err := svc.List(rootCtx, schema.ListQuery{
			Name:  name,
			Sort:  sort,
			Order: schema.ParseSortOrder(order),
		})
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteDogs(dogs, cfg)
	},
}

var dogsGetCmd = &cobra.Command{
	Use:     "get ID",
	Short:   "Show a single dog",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := core.ParseDogID(args[0])
		if err != nil {
			return err
		}
		svc, closeStore, err := openDogService()
		if err != nil {
			return err
		}
		defer closeStore()

		dog, err := svc.Get(rootCtx, id)
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteDog(dog, cfg)
	},
}

var dogsCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Register a new dog (all fields required)",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fields, err := fieldsFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		svc, closeStore, err := openDogService()
		if err != nil {
			return err
		}
		defer closeStore()

		dog, err := svc.Create(rootCtx, fields)
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteDog(dog, cfg)
	},
}

var dogsUpdateCmd = &cobra.Command{
	Use:     "update ID",
	Short:   "Change the fields given as flags",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := core.ParseDogID(args[0])
		if err != nil {
			return err
		}
		fields, err := fieldsFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		svc, closeStore, err := openDogService()
		if err != nil {
			return err
		}
		defer closeStore()

		dog, err := svc.Update(rootCtx, id, fields)
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteDog(dog, cfg)
	},
}

var dogsDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Short:   "Remove a dog and print it",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := core.ParseDogID(args[0])
		if err != nil {
			return err
		}
		svc, closeStore, err := openDogService()
		if err != nil {
			return err
		}
		defer closeStore()

		dog, err := svc.Delete(rootCtx, id)
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteDog(dog, cfg)
	},
}

// fieldsFromFlags collects the fields whose flags were explicitly set.
func fieldsFromFlags(flags *pflag.FlagSet) (schema.DogFields, error) {
	var fields schema.DogFields
	text := func(flag string) *string {
		if !flags.Changed(flag) {
			return nil
		}
		v, _ := flags.GetString(flag)
		return &v
	}
	number := func(flag string) (*float64, error) {
		raw := text(flag)
		if raw == nil {
			return nil, nil
		}
		n, err := schema.ParseNumber(*raw)
		if err != nil {
			return nil, schema.NewValidationError("--%s: %v", flag, err)
		}
		return &n, nil
	}

	fields.Name = text("name")
	fields.Breed = text("breed")
	fields.IntakeDate = text("intake-date")

	var err error
	if fields.Age, err = number("age"); err != nil {
		return fields, err
	}
	if fields.Weight, err = number("weight"); err != nil {
		return fields, err
	}
	return fields, nil
}
