/*
go-pageseg reconciles detected document layout regions with an existing
page layout.  It takes instance segmentation output (class, confidence and
pixel mask per instance) from a layout detector, converts the masks into
polygons, repairs and clips those polygons against their parent region and
merges them into the page hierarchy of a PAGE-XML document, replacing or
absorbing existing regions where they conflict.

The geometry sub package carries the polygon engine, postprocess turns
masks into polygons, reconcile holds the decision logic and page models
the layout tree that is modified.

See the cmd/pageseg command for usage on PAGE-XML workspaces.
*/
package pageseg
