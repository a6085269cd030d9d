// Package tui provides the interactive terminal UI for parlor-ctl.
//
// The deploy wizard collects the fields a new instance needs when they
// were not given as flags:
//
//	opts, err := tui.RunDeployWizard()
//	if err != nil {
//	    return err
//	}
//	if opts == nil {
//	    // wizard was cancelled
//	    return nil
//	}
package tui
