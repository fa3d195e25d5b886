// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package templates embeds the HTML pages and static assets of the site.

Each *.page.html file defines "title" and "content" blocks that fill the
"base" layout in base.layout.html. Parse builds one template set per page:

	pages, err := templates.Parse()
	err = pages.Render(w, templates.IndexPage, models.IndexPage{...})

Template functions:

  - naturaltime: relative time ("3 days ago")
  - pluralize: "" for 1, "s" otherwise
  - formatDate: absolute timestamp

Static serves the embedded stylesheet under /static/.
*/
package templates
