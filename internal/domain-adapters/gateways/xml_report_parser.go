package gateways

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/ochairo/rsasxlsx/internal/domain/entities"
)

// xmlDocument mirrors the parts of an RSAS report the conversion reads.
// The root element name is not checked. Repeated elements resolve to the
// first occurrence, and only the first detail/scanned section of a target is read.
type xmlDocument struct {
	TaskName      textList    `xml:"data>report>task>name"`
	VulnDBVersion textList    `xml:"data>report>sysvul_version"`
	Targets       []xmlTarget `xml:"data>report>targets>target"`
}

type xmlTarget struct {
	IP      textList            `xml:"ip"`
	Details []xmlDetailSection  `xml:"vuln_detail"`
	Scanned []xmlScannedSection `xml:"vuln_scanned"`
}

type xmlDetailSection struct {
	Vulns []xmlDetail `xml:"vuln"`
}

type xmlScannedSection struct {
	Vulns []xmlScanned `xml:"vuln"`
}

type xmlDetail struct {
	VulID       textList `xml:"vul_id"`
	Name        textList `xml:"name"`
	RiskPoints  textList `xml:"risk_points"`
	Solution    textList `xml:"solution"`
	Description textList `xml:"description"`
}

type xmlScanned struct {
	VulID textList `xml:"vul_id"`
	Port  textList `xml:"port"`
}

// textList collects every occurrence of an element
type textList []string

// first returns the first occurrence, nil when the element is absent
func (l textList) first() *string {
	if len(l) == 0 {
		return nil
	}
	v := l[0]
	return &v
}

// xmlReportParser decodes RSAS XML reports
type xmlReportParser struct{}

// NewXMLReportParser creates a new RSAS XML parser
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewXMLReportParser() *xmlReportParser {
	return &xmlReportParser{}
}

// Parse decodes one report. Encodings other than UTF-8 are honoured when the
// XML declaration names them (RSAS appliances may export GBK).
func (p *xmlReportParser) Parse(r io.Reader) (*entities.ScanDocument, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var doc xmlDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrArchiveMemberParse, err)
	}
	if err := expectEOF(decoder); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrArchiveMemberParse, err)
	}

	return convertDocument(doc), nil
}

// expectEOF rejects anything but comments, processing instructions and
// whitespace after the root element.
func expectEOF(decoder *xml.Decoder) error {
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("junk after document element: <%s>", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New("junk after document element")
			}
		}
	}
}

func convertDocument(doc xmlDocument) *entities.ScanDocument {
	targets := make([]entities.ScanTarget, 0, len(doc.Targets))
	for _, t := range doc.Targets {
		target := entities.ScanTarget{
			IP:      t.IP.first(),
			Details: make([]entities.DetailRecord, 0),
			Scanned: make([]entities.ScannedRecord, 0),
		}

		if len(t.Details) > 0 {
			for _, d := range t.Details[0].Vulns {
				target.Details = append(target.Details, entities.DetailRecord{
					VulID:       d.VulID.first(),
					Name:        d.Name.first(),
					RiskPoints:  d.RiskPoints.first(),
					Solution:    d.Solution.first(),
					Description: d.Description.first(),
				})
			}
		}

		if len(t.Scanned) > 0 {
			for _, sc := range t.Scanned[0].Vulns {
				target.Scanned = append(target.Scanned, entities.ScannedRecord{
					VulID: sc.VulID.first(),
					Port:  sc.Port.first(),
				})
			}
		}

		targets = append(targets, target)
	}

	return &entities.ScanDocument{
		TaskName:      doc.TaskName.first(),
		VulnDBVersion: doc.VulnDBVersion.first(),
		Targets:       targets,
	}
}
