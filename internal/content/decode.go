package content

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/ovenbird/bakehouse/internal/domain/catalog"
)

// The content documents are hand-edited through a CMS, so the decoders
// are deliberately tolerant: unknown keys are skipped and explicit
// nulls read as zero values.

func decodeHero(data []byte) (Hero, error) {
	var h Hero
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "heading":
			return into(&h.Heading, d)
		case "tagline":
			return into(&h.Tagline, d)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Hero{}, errors.Wrap(err, "decode hero")
	}
	return h, nil
}

func decodeAbout(data []byte) (About, error) {
	var a About
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "title":
			return into(&a.Title, d)
		case "paragraph1":
			return into(&a.Paragraph1, d)
		case "paragraph2":
			return into(&a.Paragraph2, d)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return About{}, errors.Wrap(err, "decode about")
	}
	return a, nil
}

func decodeBaker(data []byte) (Baker, error) {
	var b Baker
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "photo":
			return into(&b.Photo, d)
		case "name":
			return into(&b.Name, d)
		case "title":
			return into(&b.Title, d)
		case "bio":
			return into(&b.Bio, d)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Baker{}, errors.Wrap(err, "decode baker")
	}
	return b, nil
}

func decodeProducts(data []byte) ([]catalog.Product, error) {
	var products []catalog.Product
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "products" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			p, err := decodeProduct(d)
			if err != nil {
				return err
			}
			products = append(products, p)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func decodeProduct(d *jx.Decoder) (catalog.Product, error) {
	var p catalog.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "title":
			return into(&p.Title, d)
		case "price":
			return into(&p.Price, d)
		case "mainImage":
			return into(&p.MainImage, d)
		case "image1":
			return into(&p.Image1, d)
		case "image2":
			return into(&p.Image2, d)
		case "description":
			return into(&p.Description, d)
		case "videoUrl":
			return into(&p.VideoURL, d)
		case "isNew":
			return intoBool(&p.IsNew, d)
		case "order":
			return intoInt(&p.Order, d)
		case "available":
			return intoBool(&p.Available, d)
		default:
			return d.Skip()
		}
	})
	return p, err
}

func into(dst *string, d *jx.Decoder) error {
	if d.Next() == jx.Null {
		return d.Null()
	}
	v, err := d.Str()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func intoBool(dst *bool, d *jx.Decoder) error {
	if d.Next() == jx.Null {
		return d.Null()
	}
	v, err := d.Bool()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func intoInt(dst *int, d *jx.Decoder) error {
	if d.Next() == jx.Null {
		return d.Null()
	}
	v, err := d.Int()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
