package redfile

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

const STRLEN = 40

const COMPRESSION_LEVEL = 4

type tagHDF5 struct {
	tag [STRLEN]byte
}

type eventHDF5 struct {
	run_id   int32
	event_id int32
}

type triggerHDF5 struct {
	evt_index  int32
	trigger_id int32
}

type caloHitHDF5 struct {
	evt_index int32
	crate     int16
	board     int16
	channel   int16
	peak      int16
	tdc       int64
	ht        uint8
	lt        uint8
}

type trackerTimesHDF5 struct {
	evt_index int32
	hit_index int32
	side      int16
	row       int16
	layer     int16
	anodes    [5]int64
	bottom    int64
	top       int64
}

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func convertFromHdf5String(b [STRLEN]byte) string {
	n := 0
	for n < STRLEN && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

func createFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, fmt.Errorf("error creating file %s: %w", fname, err)
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, fmt.Errorf("error creating group %s: %w", groupName, err)
	}
	return g, nil
}

func newChunkedPropList(chunks []uint) (*hdf5.PropList, error) {
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, err
	}
	if err := plist.SetChunk(chunks); err != nil {
		return nil, err
	}
	if err := plist.SetDeflate(COMPRESSION_LEVEL); err != nil {
		return nil, err
	}
	return plist, nil
}

// create2dArray creates an extendible (events x width) dataset.
func create2dArray(group *hdf5.Group, name string, width int, dtype *hdf5.Datatype) (*hdf5.Dataset, error) {
	dims := []uint{0, uint(width)}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims), uint(width)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, err
	}
	defer fileSpace.Close()

	chunks := []uint{1, 32768}
	if width < 32768 {
		chunks[1] = uint(width)
	}
	plist, err := newChunkedPropList(chunks)
	if err != nil {
		return nil, err
	}
	defer plist.Close()

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, fmt.Errorf("error creating array %s: %w", name, err)
	}
	return dset, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, err
	}
	defer fileSpace.Close()

	plist, err := newChunkedPropList([]uint{32768})
	if err != nil {
		return nil, err
	}
	defer plist.Close()

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, err
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, fmt.Errorf("error creating table %s: %w", name, err)
	}
	return dset, nil
}

// writeArrayToTable appends data at row offset and returns the new length.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, offset int) (int, error) {
	length := uint(len(*data))
	if length == 0 {
		return offset, nil
	}
	dataspace, err := hdf5.CreateSimpleDataspace([]uint{length}, nil)
	if err != nil {
		return offset, err
	}
	defer dataspace.Close()

	rows := uint(offset)
	if err := dataset.Resize([]uint{rows + length}); err != nil {
		return offset, err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	if err := filespace.SelectHyperslab([]uint{rows}, nil, []uint{length}, nil); err != nil {
		return offset, err
	}
	if err := dataset.WriteSubset(data, dataspace, filespace); err != nil {
		return offset, err
	}
	return offset + int(length), nil
}

func write2dArray[T any](dataset *hdf5.Dataset, data *[]T, evtCounter int, width int) error {
	newsize := []uint{uint(evtCounter) + 1, uint(width)}
	if err := dataset.Resize(newsize); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{uint(evtCounter), 0}
	count := []uint{1, uint(width)}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return err
	}

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	return dataset.WriteSubset(data, dataspace, filespace)
}

// readTable reads a whole one dimensional table.
func readTable[T any](group *hdf5.Group, name string) ([]T, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, fmt.Errorf("error opening table %s: %w", name, err)
	}
	defer dset.Close()

	space := dset.Space()
	dims, _, err := space.SimpleExtentDims()
	space.Close()
	if err != nil {
		return nil, fmt.Errorf("error reading dimensions of %s: %w", name, err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("table %s has %d dimensions", name, len(dims))
	}

	data := make([]T, dims[0])
	if len(data) == 0 {
		return data, nil
	}
	if err := dset.Read(&data); err != nil {
		return nil, fmt.Errorf("error reading table %s: %w", name, err)
	}
	return data, nil
}
