package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/mangle"
)

func newSymbolCmd() *cobra.Command {
	var overloaded bool

	cmd := &cobra.Command{
		Use:   "symbol <class> <method> [descriptor]",
		Short: "Print the JNI linkage symbol of a native method",
		Example: `  jnigen symbol com.example.Native add '(II)I'
  Java_com_example_Native_add__II`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params []classfile.FieldType
			if len(args) == 3 {
				var err error
				params, err = classfile.Parameters(args[2])
				if err != nil {
					return err
				}
			}
			fmt.Println(mangle.NativeSymbol(args[0], args[1], params, overloaded))
			return nil
		},
	}

	cmd.Flags().BoolVar(&overloaded, "overloaded", false, "add the signature suffix even without parameters")

	return cmd
}
