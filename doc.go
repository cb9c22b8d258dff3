// Package nullcfg hosts null-preserving configuration stores in an Fx
// application, optionally served over HTTP.
//
//	app := nullcfg.NewApp(
//	    nullcfg.WithStore(store.Config{Path: "config.yml", AutoSave: true}),
//	    nullcfg.WithHTTPListener("api", listener.WithAddress(":8080")),
//	)
//	app.Run()
package nullcfg
