// Package commands implements cmd/dicomforward's Kong subcommands.
package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/go-radx/dicomforward/cmd/dicomforward/internal/ui"
	"github.com/go-radx/dicomforward/config"
	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/anonymize"
	"github.com/go-radx/dicomforward/dicom/tag"
	"github.com/go-radx/dicomforward/dicom/uid"
	"github.com/go-radx/dicomforward/dicom/vr"
	"github.com/go-radx/dicomforward/forward"
	"github.com/go-radx/dicomforward/stowrs"
)

// ForwardCmd drives forward.Controller over a directory of already-landed
// DICOM instances, standing in for the external C-STORE-SCP listener that
// is out of scope per the engine's own purpose and scope (§1, §10.4).
type ForwardCmd struct {
	Config string `name:"config" required:"" type:"existingfile" help:"Path to dicomforward YAML config"`
	Dir    string `name:"dir" required:"" type:"existingdir" help:"Directory of landed DICOM instances to forward"`
}

// Run executes the forward command.
func (c *ForwardCmd) Run(logger *log.Logger) error {
	ui.PrintBanner()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	destinations, err := buildDestinations(cfg)
	if err != nil {
		return fmt.Errorf("build destinations: %w", err)
	}

	result, err := dicom.ParseDirectory(c.Dir)
	if err != nil {
		return fmt.Errorf("scan directory %s: %w", c.Dir, err)
	}
	logger.Info("scanned directory", "dir", c.Dir, "parsed", result.Parsed, "failed", result.Failed)

	controller := forward.NewController(logger)
	ctx := context.Background()

	var forwarded, failed int
	for _, ds := range result.Collection.DataSets() {
		iuid, cuid, tsuid, err := extractIdentifiers(ds)
		if err != nil {
			logger.Warn("skipping instance", "error", err)
			failed++
			continue
		}

		ts, err := uid.Parse(tsuid)
		if err != nil {
			logger.Warn("skipping instance", "iuid", iuid, "error", err)
			failed++
			continue
		}
		var body bytes.Buffer
		if err := dicom.WriteDataSetBody(&body, ds, &ts); err != nil {
			logger.Warn("skipping instance", "iuid", iuid, "error", err)
			failed++
			continue
		}

		params := &forward.Params{IUID: iuid, CUID: cuid, TSUID: tsuid, Data: &body}
		if err := controller.StoreMultipleDestination(ctx, destinations, params); err != nil {
			logger.Error("forward aborted", "iuid", iuid, "error", err)
			failed++
			continue
		}
		forwarded++
	}

	logger.Info("forward complete", "forwarded", forwarded, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("forward completed with %d failures", failed)
	}
	return nil
}

// extractIdentifiers reads the three UIDs forward.Params needs from an
// already-parsed dataset's File Meta Information.
func extractIdentifiers(ds *dicom.DataSet) (iuid, cuid, tsuid string, err error) {
	meta := ds.FileMetaInformation()

	cuidElem, err := meta.Get(tag.New(0x0002, 0x0002))
	if err != nil {
		return "", "", "", fmt.Errorf("missing media storage SOP class UID: %w", err)
	}
	iuidElem, err := meta.Get(tag.New(0x0002, 0x0003))
	if err != nil {
		return "", "", "", fmt.Errorf("missing media storage SOP instance UID: %w", err)
	}
	tsuidElem, err := meta.Get(tag.New(0x0002, 0x0010))
	if err != nil {
		return "", "", "", fmt.Errorf("missing transfer syntax UID: %w", err)
	}

	return iuidElem.Value().String(), cuidElem.Value().String(), tsuidElem.Value().String(), nil
}

// buildDestinations turns cfg's declarative destinations into wired
// forward.ForwardDestination values.
func buildDestinations(cfg *config.Config) ([]*forward.ForwardDestination, error) {
	destinations := make([]*forward.ForwardDestination, 0, len(cfg.Destinations))
	for _, dc := range cfg.Destinations {
		dest := &forward.ForwardDestination{
			Name: dc.Name,
			CUID: dc.SOPClassUID,
		}

		editors, err := buildEditors(dc.Editors)
		if err != nil {
			return nil, fmt.Errorf("destination %q: %w", dc.Name, err)
		}
		dest.Editors = editors

		if dc.MaskArea != nil {
			dest.MaskArea = buildMaskArea(dc.MaskArea)
		}

		switch dc.Kind {
		case config.DestinationDICOM:
			dest.Kind = forward.DicomDestinationKind
			remoteAddr := fmt.Sprintf("%s:%d", dc.Host, dc.Port)
			dest.Association = forward.NewDicomAssociation(remoteAddr, dc.CallingAE, dc.CalledAE, dc.MaxPDULength)
		case config.DestinationWeb:
			dest.Kind = forward.WebDestinationKind
			client := &stowrs.Client{BaseURL: dc.StoreURL}
			if len(dc.Headers) > 0 {
				client.Headers = make(map[string][]string, len(dc.Headers))
				for k, v := range dc.Headers {
					client.Headers[k] = []string{v}
				}
			}
			dest.WebClient = client
		default:
			return nil, fmt.Errorf("destination %q: unknown kind %q", dc.Name, dc.Kind)
		}

		destinations = append(destinations, dest)
	}
	return destinations, nil
}

func buildEditors(editorConfigs []config.EditorConfig) ([]forward.AttributeEditor, error) {
	editors := make([]forward.AttributeEditor, 0, len(editorConfigs))
	for _, ec := range editorConfigs {
		switch ec.Type {
		case config.EditorRename:
			t, err := tag.Parse(ec.Tag)
			if err != nil {
				return nil, fmt.Errorf("rename editor: %w", err)
			}
			elemVR, err := vr.Parse(ec.VR)
			if err != nil {
				return nil, fmt.Errorf("rename editor: %w", err)
			}
			editors = append(editors, &forward.RenameStringEditor{Tag: t, VR: elemVR, Replacement: ec.Replacement})
		case config.EditorRemove:
			t, err := tag.Parse(ec.Tag)
			if err != nil {
				return nil, fmt.Errorf("remove editor: %w", err)
			}
			editors = append(editors, &forward.RemoveTagEditor{Tag: t})
		case config.EditorAnonymize:
			profile, err := parseAnonymizeProfile(ec.Profile)
			if err != nil {
				return nil, err
			}
			editors = append(editors, forward.NewAnonymizingEditor(profile))
		default:
			return nil, fmt.Errorf("unknown editor type %q", ec.Type)
		}
	}
	return editors, nil
}

func parseAnonymizeProfile(name string) (anonymize.Profile, error) {
	switch name {
	case "basic", "":
		return anonymize.ProfileBasic, nil
	case "clean":
		return anonymize.ProfileClean, nil
	case "retain_uids":
		return anonymize.ProfileRetainUIDs, nil
	case "retain_device_identity":
		return anonymize.ProfileRetainDeviceIdentity, nil
	default:
		return 0, fmt.Errorf("anonymize editor: unknown profile %q", name)
	}
}

func buildMaskArea(mc *config.MaskAreaConfig) *forward.MaskArea {
	rects := make([]forward.Rectangle, 0, len(mc.Rectangles))
	for _, r := range mc.Rectangles {
		rects = append(rects, forward.Rectangle{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY})
	}
	return &forward.MaskArea{Rectangles: rects}
}
