// Package io stores dependency graphs as JSON.
//
// Each installed package is one entry carrying its direct requirements:
//
//	{
//	  "packages": [
//	    {"name": "firefox", "depth": 0, "meta": {"version": "131.0-1"}, "requires": ["gtk3"]},
//	    {"name": "gtk3", "depth": 1}
//	  ]
//	}
//
// Entries are sorted by name and requirements keep graph order, so the same
// closure always encodes to the same bytes. depth counts hops from the
// nearest matched package (-1 when unreached); meta holds the version and
// formatted size the CLI attaches.
//
// [Decode] accepts the same shape, rejecting duplicate names and
// requirements on packages missing from the document.
package io
