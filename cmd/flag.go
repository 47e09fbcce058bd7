package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Flag struct {
	Config string
	Cli    string
}

type StringFlag struct {
	f *Flag
}

type StringPFlag struct {
	f  *Flag
	sh string
}

type IntPFlag struct {
	f  *Flag
	sh string
}

type BoolPFlag struct {
	f  *Flag
	sh string
}

func (f *StringFlag) Bind(cmd *cobra.Command, value, usage string) {
	cmd.Flags().String(f.f.Cli, value, usage)
	f.f.bind(cmd)
}

func (f *Flag) String() *StringFlag {
	return &StringFlag{
		f: f,
	}
}

func (f *StringPFlag) Bind(cmd *cobra.Command, value, usage string) {
	cmd.Flags().StringP(f.f.Cli, f.sh, value, usage)
	f.f.bind(cmd)
}

func (f *Flag) StringP(shorthand string) *StringPFlag {
	return &StringPFlag{
		f:  f,
		sh: shorthand,
	}
}

func (f *IntPFlag) Bind(cmd *cobra.Command, value int, usage string) {
	cmd.Flags().IntP(f.f.Cli, f.sh, value, usage)
	f.f.bind(cmd)
}

func (f *Flag) IntP(shorthand string) *IntPFlag {
	return &IntPFlag{
		f:  f,
		sh: shorthand,
	}
}

func (f *BoolPFlag) Bind(cmd *cobra.Command, value bool, usage string) {
	cmd.Flags().BoolP(f.f.Cli, f.sh, value, usage)
	f.f.bind(cmd)
}

func (f *Flag) BoolP(shorthand string) *BoolPFlag {
	return &BoolPFlag{
		f:  f,
		sh: shorthand,
	}
}

func (f *Flag) bind(cmd *cobra.Command) {
	if err := viper.BindPFlag(f.Config, cmd.Flags().Lookup(f.Cli)); err != nil {
		panic(err)
	}
}

func NewFlag(config, cli string) *Flag {
	return &Flag{
		Config: config,
		Cli:    cli,
	}
}
