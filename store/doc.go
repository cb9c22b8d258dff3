// Package store binds a config.Configuration to a file.
//
// A Store owns the tree and a codec chosen from Config.Format (or the file
// extension). It is the single point of serialization for concurrent callers:
// reads go through View, mutations through Update.
//
//	st, err := store.New(store.Config{Path: "config.yml", AutoSave: true})
//	err = st.Load()
//	err = st.Update(func(cfg *config.Configuration) error {
//	    return cfg.Set("server.motd", nil)
//	})
//
// NewModule wires a Store into an Fx application.
package store
