package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vesaa/staffdesk/internal/models"
	"github.com/vesaa/staffdesk/internal/store"
	"github.com/vesaa/staffdesk/internal/termui"
)

func newEmployeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "List and manage employee records",
	}
	cmd.AddCommand(
		employeesListCmd(),
		employeesShowCmd(),
		employeesAddCmd(),
		employeesEditCmd(),
		employeesDeleteCmd(),
	)
	return cmd
}

// storeCommand wraps the boilerplate every employees subcommand shares.
func storeCommand(run func(cmd *cobra.Command, args []string, a *app, st *store.Store, p *termui.Printer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		ctx := a.context(cmd)
		cmd.SetContext(ctx)
		// The minimum list delay only exists to keep the web console from flickering.
		return run(cmd, args, a, a.newStore(0), a.printer(ctx, cmd))
	}
}

// failed prints the action's error and reports it to main.
func failed(p *termui.Printer, res store.Result) error {
	p.Error(res.Message)
	return errReported
}

func employeesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all employees",
		Args:  cobra.NoArgs,
		RunE: storeCommand(func(cmd *cobra.Command, _ []string, _ *app, st *store.Store, p *termui.Printer) error {
			if res := st.FetchEmployees(cmd.Context()); !res.OK {
				return failed(p, res)
			}
			p.Employees(st.Employees())
			return nil
		}),
	}
}

func employeesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: storeCommand(func(cmd *cobra.Command, args []string, _ *app, st *store.Store, p *termui.Printer) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, res := st.FetchEmployeeByID(cmd.Context(), id)
			if !res.OK {
				return failed(p, res)
			}
			p.Employee(cur)
			return nil
		}),
	}
}

func employeesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: storeCommand(func(cmd *cobra.Command, _ []string, a *app, st *store.Store, p *termui.Printer) error {
			var e models.Employee
			if err := applyEmployeeFlags(cmd, &e); err != nil {
				return err
			}
			if res := st.AddEmployee(cmd.Context(), e); !res.OK {
				return failed(p, res)
			}
			p.Success(a.translator().T("Employees.Created"))
			return nil
		}),
	}
	employeeFlags(cmd)
	_ = cmd.MarkFlagRequired("work-id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("gender")
	return cmd
}

func employeesEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update an employee; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: storeCommand(func(cmd *cobra.Command, args []string, a *app, st *store.Store, p *termui.Printer) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, res := st.FetchEmployeeByID(cmd.Context(), id)
			if !res.OK {
				return failed(p, res)
			}
			if err := applyEmployeeFlags(cmd, &e); err != nil {
				return err
			}
			e.ID = models.IDPtr(id)
			if res := st.EditEmployee(cmd.Context(), e); !res.OK {
				return failed(p, res)
			}
			p.Success(a.translator().T("Employees.Updated"))
			return nil
		}),
	}
	employeeFlags(cmd)
	return cmd
}

func employeesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an employee",
		Args:    cobra.ExactArgs(1),
		RunE: storeCommand(func(cmd *cobra.Command, args []string, a *app, st *store.Store, p *termui.Printer) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if res := st.RemoveEmployee(cmd.Context(), id); !res.OK {
				return failed(p, res)
			}
			p.Success(a.translator().T("Employees.Deleted"))
			return nil
		}),
	}
}

func employeeFlags(cmd *cobra.Command) {
	cmd.Flags().String("work-id", "", "Work ID")
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("job-title", "", "Job title")
	cmd.Flags().String("gender", "", "Gender: M or F")
	cmd.Flags().String("hire-date", "", "Hire date, YYYY-MM-DD")
}

// applyEmployeeFlags copies every flag the user set onto e.
func applyEmployeeFlags(cmd *cobra.Command, e *models.Employee) error {
	fs := cmd.Flags()
	str := func(name string, dst *string) {
		if fs.Changed(name) {
			v, _ := fs.GetString(name)
			*dst = strings.TrimSpace(v)
		}
	}
	str("work-id", &e.WorkID)
	str("name", &e.Name)
	str("job-title", &e.JobTitle)

	if fs.Changed("gender") {
		v, _ := fs.GetString("gender")
		g, err := models.ParseGender(v)
		if err != nil {
			return err
		}
		e.Gender = g
	}
	if fs.Changed("hire-date") {
		v, _ := fs.GetString("hire-date")
		d := models.FormatDate(v)
		if v != "" && d == "" {
			return fmt.Errorf("invalid hire date %q, use YYYY-MM-DD", v)
		}
		e.HireDate = d
	}

	if e.WorkID == "" || e.Name == "" {
		return fmt.Errorf("work id and name must not be empty")
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", s)
	}
	return id, nil
}
