// Package files writes report artifacts atomically.
//
//	m := files.NewManager(logger)
//	err := m.Write("viz2_altair.html", func(w io.Writer) error {
//	    return tmpl.Execute(w, data)
//	})
package files
