// Package story turns news.Story records into renderable list items.
//
// Rendering is pure: the same story, ownership flag and favorite flag always
// produce the same Item. Favorite status comes from an Index built from the
// current user's favorites on every render pass.
package story
