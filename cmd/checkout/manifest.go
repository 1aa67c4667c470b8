package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	httpin "bloom/internal/adapters/in/http"
	"bloom/internal/core/domain/model/attachment"
	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/shipping"
	"bloom/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Manifest is an order written by hand or exported from the storefront.
type Manifest struct {
	Buyer struct {
		FirstName string `yaml:"firstName"`
		LastName  string `yaml:"lastName"`
		Phone     string `yaml:"phone"`
		Email     string `yaml:"email"`
	} `yaml:"buyer"`
	Lines []ManifestLine `yaml:"lines"`
}

type ManifestLine struct {
	Product struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		Subtitle string `yaml:"subtitle"`
	} `yaml:"product"`
	UnitPrice string `yaml:"unitPrice"`
	Quantity  int    `yaml:"quantity"`
	Card      struct {
		Title   string `yaml:"title"`
		Message string `yaml:"message"`
	} `yaml:"card"`
	Mode         string         `yaml:"mode"`
	PickupCity   string         `yaml:"pickupCity"`
	DeliveryDate string         `yaml:"deliveryDate"`
	Address      map[string]any `yaml:"address"`
	Images       []string       `yaml:"images"`
}

// ParseManifest decodes r. Unknown keys are rejected so typos surface before checkout.
func ParseManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	if len(m.Lines) == 0 {
		return Manifest{}, errs.NewValueIsRequiredError("lines")
	}
	return m, nil
}

// LoadManifest reads a manifest file. Relative image paths resolve against its directory.
func LoadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return Manifest{}, err
	}
	base := filepath.Dir(path)
	for i := range m.Lines {
		for j, img := range m.Lines[i].Images {
			if !filepath.IsAbs(img) {
				m.Lines[i].Images[j] = filepath.Join(base, img)
			}
		}
	}
	return m, nil
}

func (l ManifestLine) input() (cart.LineInput, error) {
	price := decimal.Zero
	if strings.TrimSpace(l.UnitPrice) != "" {
		var err error
		if price, err = decimal.NewFromString(strings.TrimSpace(l.UnitPrice)); err != nil {
			return cart.LineInput{}, errs.NewValueIsInvalidErrorWithCause("unit price", err)
		}
	}
	in := cart.LineInput{
		Product: cart.Product{
			ID:       l.Product.ID,
			Name:     l.Product.Name,
			Subtitle: l.Product.Subtitle,
		},
		UnitPrice:     price,
		Quantity:      l.Quantity,
		Customization: cart.Customization{Title: l.Card.Title, Message: l.Card.Message},
		Mode:          cart.DeliveryMode(strings.ToLower(strings.TrimSpace(l.Mode))),
		PickupCity:    l.PickupCity,
		DeliveryDate:  strings.TrimSpace(l.DeliveryDate),
	}
	return in, in.Validate()
}

// LineRejections are the attachment messages for one line, identified by its 1-based position.
type LineRejections struct {
	Line     int
	Messages []string
}

// Apply replays the manifest onto store the way the storefront forms would: add the line, set
// the address and resolved quote for deliveries, then attach the pictures. Attachment rejections
// come back in line order.
func (m Manifest) Apply(store *cart.Store, resolver shipping.Resolver) ([]LineRejections, error) {
	store.SetBuyer(cart.BuyerPatch{
		FirstName: &m.Buyer.FirstName,
		LastName:  &m.Buyer.LastName,
		Phone:     &m.Buyer.Phone,
		Email:     &m.Buyer.Email,
	})

	inputs := make([]cart.LineInput, len(m.Lines))
	var problems []error
	for i, line := range m.Lines {
		in, err := line.input()
		if err != nil {
			problems = append(problems, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		inputs[i] = in
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	var rejections []LineRejections
	for i, line := range m.Lines {
		id := store.AddLine(inputs[i])
		if inputs[i].Mode == cart.ModeDelivery {
			addr := httpin.NormalizeAddress(line.Address)
			store.SetLineAddress(id, addr)
			store.SetLineShipping(id, resolver.Resolve(addr.PostalCode))
		}
		if len(line.Images) == 0 {
			continue
		}
		picked, err := pickFiles(line.Images)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if res := store.AttachImages(id, picked); len(res.Rejections) > 0 {
			rejections = append(rejections, LineRejections{Line: i + 1, Messages: res.Rejections})
		}
	}
	return rejections, nil
}

func pickFiles(paths []string) ([]attachment.File, error) {
	files := make([]attachment.File, 0, len(paths))
	for _, p := range paths {
		f, err := attachment.FileFromPath(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
