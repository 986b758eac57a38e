package tags

import (
	"go.senan.xyz/taglib"
)

// readWithTaglib reads metadata using TagLib as fallback when dhowden/tag fails.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	return &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
		TrackNumber: tags.number(taglib.TrackNumber),
		DiscNumber:  tags.number(taglib.DiscNumber),
	}, nil
}
