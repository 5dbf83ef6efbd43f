// Package script runs user Lua hooks next to the input pipeline.
//
// A Host loads one script file in a restricted gopher-lua state (no io,
// os, debug or module loading) and exposes a small rebind table. The host
// implements the dispatcher's AnyKeyHook and FireHook so it can be added
// directly:
//
//	host := script.NewHost(catalog, table, logger)
//	if err := host.LoadFile(cfg.Script.Path); err != nil {
//	    logger.Warn("%v", err)
//	}
//	d.AddAnyKeyHook(host)
//	d.AddFireHook(host)
//	defer host.Close()
//
// Every call into Lua runs with a short timeout so a broken script cannot
// stall a frame.
package script
