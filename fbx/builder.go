// Package fbx writes binary fbx 7.4 files with rig animation of scene snapshots.
package fbx

import (
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"
	"github.com/pkg/errors"
)

const FBX_CREATOR = "FBX SDK/FBX Plugins version 2013.3 build=20121223"
const FBX_APPLICATION_VENDOR = "Golem's Fate"
const FBX_APPLICATION_NAME = "asset_pipeline"
const FBX_APPLICATION_VERSION = "1.0"
const FBX_DATE_TIME_GMT = "01/01/1970 00:00:00.000"
const FBX_CREATION_TIME = "1970-01-01 10:00:00:000"

// ticks per second of fbx time
const KTIME_SECOND = 46186158000

var FBX_FILE_ID []byte = []byte{
	0x28, 0xb3, 0x2a, 0xeb, 0xb6, 0x24, 0xcc, 0xc2,
	0xbf, 0xc8, 0xb0, 0x2a, 0xa9, 0x2b, 0xfc, 0xf1}

// fbx time modes by frame rate, others written as custom
var timeModes = map[float32]int32{
	120: 1, 100: 2, 60: 3, 50: 4, 48: 5, 30: 6, 25: 10, 24: 11, 1000: 12, 96: 15, 72: 16,
}

const timeModeCustom = 14

type GlobalSettings struct {
	UpAxis, UpAxisSign       int32
	FrontAxis, FrontAxisSign int32
	CoordAxis, CoordAxisSign int32
	UnitScaleFactor          float64
	FrameRate                float32
	TimeSpanStart            int64
	TimeSpanStop             int64
}

type Builder struct {
	f      *fbx.FBX
	lastId int64

	objects     *fbx.Node
	connections *fbx.Node
	takes       *fbx.Node
	document    *fbx.Node
}

func NewBuilder(filename string, gs GlobalSettings) *Builder {
	f := &Builder{
		lastId:      1000000,
		f:           fbx.NewFBX(7400),
		objects:     bfbx73.Objects(),
		connections: bfbx73.Connections(),
		takes:       bfbx73.Takes(),
	}
	f.createHeaders(filename, gs)
	return f
}

func node(name string, properties ...interface{}) *fbx.Node {
	n := &fbx.Node{Name: name}
	n.Properties = append(n.Properties, properties...)
	return n
}

func (f *Builder) createHeaders(filename string, gs GlobalSettings) {
	timeMode, ok := timeModes[gs.FrameRate]
	if !ok {
		timeMode = timeModeCustom
	}

	f.document = bfbx73.Document(f.GenerateId(), "Scene", "Scene").AddNodes(
		bfbx73.Properties70().AddNodes(
			bfbx73.P("SourceObject", "object", "", ""),
			bfbx73.P("ActiveAnimStackName", "KString", "", "", ""),
		),
		bfbx73.RootNode(0),
	)

	f.Root().AddNodes(
		bfbx73.FBXHeaderExtension().AddNodes(
			bfbx73.FBXHeaderVersion(1003),
			bfbx73.FBXVersion(7400),
			bfbx73.EncryptionType(0),
			bfbx73.CreationTimeStamp().AddNodes(
				bfbx73.Version(1000),
				bfbx73.Year(1970),
				bfbx73.Month(1),
				bfbx73.Day(1),
				bfbx73.Hour(10),
				bfbx73.Minute(0),
				bfbx73.Second(0),
				bfbx73.Millisecond(0),
			),
			bfbx73.Creator(FBX_CREATOR),
			bfbx73.SceneInfo("GlobalInfo\x00\x01SceneInfo", "UserData").AddNodes(
				bfbx73.Type("UserData"),
				bfbx73.Version(100),
				bfbx73.MetaData().AddNodes(
					bfbx73.Version(100),
					bfbx73.Title(""),
					bfbx73.Subject(""),
					bfbx73.Author(""),
					bfbx73.Keywords(""),
					bfbx73.Revision(""),
					bfbx73.Comment(""),
				),
				bfbx73.Properties70().AddNodes(
					bfbx73.P("DocumentUrl", "KString", "Url", "", filename),
					bfbx73.P("SrcDocumentUrl", "KString", "Url", "", filename),
					bfbx73.P("Original", "Compound", "", ""),
					bfbx73.P("Original|ApplicationVendor", "KString", "", "", FBX_APPLICATION_VENDOR),
					bfbx73.P("Original|ApplicationName", "KString", "", "", FBX_APPLICATION_NAME),
					bfbx73.P("Original|ApplicationVersion", "KString", "", "", FBX_APPLICATION_VERSION),
					bfbx73.P("Original|DateTime_GMT", "DateTime", "", "", FBX_DATE_TIME_GMT),
					bfbx73.P("Original|FileName", "KString", "", "", filepath.Base(filename)),
					bfbx73.P("LastSaved", "Compound", "", ""),
					bfbx73.P("LastSaved|ApplicationVendor", "KString", "", "", FBX_APPLICATION_VENDOR),
					bfbx73.P("LastSaved|ApplicationName", "KString", "", "", FBX_APPLICATION_NAME),
					bfbx73.P("LastSaved|ApplicationVersion", "KString", "", "", FBX_APPLICATION_VERSION),
					bfbx73.P("LastSaved|DateTime_GMT", "DateTime", "", "", FBX_DATE_TIME_GMT),
				),
			),
		),
		bfbx73.FileId(FBX_FILE_ID),
		bfbx73.CreationTime(FBX_CREATION_TIME),
		bfbx73.Creator(FBX_CREATOR),
		bfbx73.GlobalSettings().AddNodes(
			bfbx73.Version(1000),
			bfbx73.Properties70().AddNodes(
				bfbx73.P("UpAxis", "int", "Integer", "", gs.UpAxis),
				bfbx73.P("UpAxisSign", "int", "Integer", "", gs.UpAxisSign),
				bfbx73.P("FrontAxis", "int", "Integer", "", gs.FrontAxis),
				bfbx73.P("FrontAxisSign", "int", "Integer", "", gs.FrontAxisSign),
				bfbx73.P("CoordAxis", "int", "Integer", "", gs.CoordAxis),
				bfbx73.P("CoordAxisSign", "int", "Integer", "", gs.CoordAxisSign),
				bfbx73.P("OriginalUpAxis", "int", "Integer", "", gs.UpAxis),
				bfbx73.P("OriginalUpAxisSign", "int", "Integer", "", gs.UpAxisSign),
				bfbx73.P("UnitScaleFactor", "double", "Number", "", gs.UnitScaleFactor),
				bfbx73.P("OriginalUnitScaleFactor", "double", "Number", "", gs.UnitScaleFactor),
				bfbx73.P("AmbientColor", "ColorRGB", "Color", "", float64(0), float64(0), float64(0)),
				bfbx73.P("DefaultCamera", "KString", "", "", "Producer Perspective"),
				bfbx73.P("TimeMode", "enum", "", "", timeMode),
				bfbx73.P("TimeProtocol", "enum", "", "", int32(2)),
				bfbx73.P("SnapOnFrameMode", "enum", "", "", int32(0)),
				bfbx73.P("TimeSpanStart", "KTime", "Time", "", gs.TimeSpanStart),
				bfbx73.P("TimeSpanStop", "KTime", "Time", "", gs.TimeSpanStop),
				bfbx73.P("CustomFrameRate", "double", "Number", "", float64(gs.FrameRate)),
				bfbx73.P("CurrentTimeMarker", "int", "Integer", "", int32(-1)),
			),
		),
		bfbx73.Documents().AddNodes(
			bfbx73.Count(1),
			f.document,
		),
		bfbx73.References(),
		bfbx73.Definitions().AddNodes(
			bfbx73.Version(100),
			bfbx73.Count(1),
			bfbx73.ObjectType("GlobalSettings").AddNodes(
				bfbx73.Count(1),
			),
			bfbx73.ObjectType("Model").AddNodes(
				bfbx73.Count(0),
				bfbx73.PropertyTemplate("FbxNode").AddNodes(
					bfbx73.Properties70().AddNodes(
						bfbx73.P("QuaternionInterpolate", "enum", "", "", int32(0)),
						bfbx73.P("RotationOrder", "enum", "", "", int32(0)),
						bfbx73.P("InheritType", "enum", "", "", int32(0)),
						bfbx73.P("Show", "bool", "", "", int32(1)),
						bfbx73.P("Lcl Translation", "Lcl Translation", "", "A", float64(0), float64(0), float64(0)),
						bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A", float64(0), float64(0), float64(0)),
						bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A", float64(1), float64(1), float64(1)),
						bfbx73.P("Visibility", "Visibility", "", "A", float64(1)),
						bfbx73.P("Visibility Inheritance", "Visibility Inheritance", "", "", int32(1)),
					),
				),
			),
			bfbx73.ObjectType("NodeAttribute").AddNodes(
				bfbx73.Count(0),
				bfbx73.PropertyTemplate("FbxSkeleton").AddNodes(
					bfbx73.Properties70().AddNodes(
						bfbx73.P("Color", "ColorRGB", "Color", "", float64(0.8), float64(0.8), float64(0.8)),
						bfbx73.P("Size", "double", "Number", "", float64(100)),
						bfbx73.P("LimbLength", "double", "Number", "H", float64(1)),
					),
				),
			),
			bfbx73.ObjectType("AnimationStack").AddNodes(
				bfbx73.Count(0),
				bfbx73.PropertyTemplate("FbxAnimStack").AddNodes(
					bfbx73.Properties70().AddNodes(
						bfbx73.P("Description", "KString", "", "", ""),
						bfbx73.P("LocalStart", "KTime", "Time", "", int64(0)),
						bfbx73.P("LocalStop", "KTime", "Time", "", int64(0)),
						bfbx73.P("ReferenceStart", "KTime", "Time", "", int64(0)),
						bfbx73.P("ReferenceStop", "KTime", "Time", "", int64(0)),
					),
				),
			),
			bfbx73.ObjectType("AnimationLayer").AddNodes(
				bfbx73.Count(0),
				bfbx73.PropertyTemplate("FbxAnimLayer").AddNodes(
					bfbx73.Properties70().AddNodes(
						bfbx73.P("Weight", "Number", "", "A", float64(100)),
						bfbx73.P("Mute", "bool", "", "", int32(0)),
						bfbx73.P("Solo", "bool", "", "", int32(0)),
						bfbx73.P("Lock", "bool", "", "", int32(0)),
						bfbx73.P("BlendMode", "enum", "", "", int32(0)),
						bfbx73.P("RotationAccumulationMode", "enum", "", "", int32(0)),
						bfbx73.P("ScaleAccumulationMode", "enum", "", "", int32(0)),
					),
				),
			),
			bfbx73.ObjectType("AnimationCurveNode").AddNodes(
				bfbx73.Count(0),
				bfbx73.PropertyTemplate("FbxAnimCurveNode").AddNodes(
					bfbx73.Properties70().AddNodes(
						bfbx73.P("d", "Compound", "", ""),
					),
				),
			),
			bfbx73.ObjectType("AnimationCurve").AddNodes(
				bfbx73.Count(0),
			),
		),
		f.objects,
		f.connections,
		f.takes,
	)
}

func (f *Builder) countDefinitions() {
	counts := make(map[string]int32)
	for _, object := range f.objects.Nodes {
		counts[object.Name]++
	}

	definitions := f.Root().GetNode("Definitions")
	totalCount := int32(1) // 1 for GlobalSettings

	for name, count := range counts {
		totalCount += count

		var objectType *fbx.Node
		for _, ot := range definitions.GetNodes("ObjectType") {
			if ot.Properties[0].(string) == name {
				objectType = ot
			}
		}
		if objectType == nil {
			objectType = bfbx73.ObjectType(name)
			definitions.AddNode(objectType)
		}

		objectType.GetOrAddNode(bfbx73.Count(0)).Properties[0] = count
	}

	definitions.GetOrAddNode(bfbx73.Count(0)).Properties[0] = totalCount
}

func (f *Builder) Root() *fbx.Node {
	return &f.f.Root
}

func (f *Builder) GenerateId() int64 {
	f.lastId++
	return f.lastId
}

// SetActiveStack names stack opened by default
func (f *Builder) SetActiveStack(name string) {
	for _, p := range f.document.GetNode("Properties70").GetNodes("P") {
		if p.Properties[0].(string) == "ActiveAnimStackName" {
			p.Properties[len(p.Properties)-1] = name
		}
	}
	f.takes.GetOrAddNode(bfbx73.Current("")).Properties[0] = name
}

func (f *Builder) AddTake(name, filename string, start, stop int64) {
	f.takes.AddNodes(
		node("Take", name).AddNodes(
			node("FileName", filepath.Base(filename)),
			node("LocalTime", start, stop),
			node("ReferenceTime", start, stop),
		),
	)
}

// TODO: drop tempfile once fbx.Write accepts plain io.Writer
func (f *Builder) Write(w io.Writer) error {
	f.countDefinitions()

	tempFile, err := ioutil.TempFile("", "fbxexport.*.fbx")
	if err != nil {
		return err
	}
	defer tempFile.Close()
	defer os.Remove(tempFile.Name())

	if err := fbx.Write(tempFile, f.f); err != nil {
		return errors.Wrapf(err, "Fbx writing failed")
	}

	if _, err := tempFile.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "Unable to seek")
	}
	n, err := io.Copy(w, tempFile)
	log.Printf("[fbx] Written %d bytes", n)
	return err
}

func (f *Builder) AddObjects(nodes ...*fbx.Node)     { f.objects.AddNodes(nodes...) }
func (f *Builder) AddConnections(nodes ...*fbx.Node) { f.connections.AddNodes(nodes...) }
