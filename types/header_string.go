package types

var headerFileTypeStrings = []IntName{
	{uint32(MH_OBJECT), "OBJECT"},
	{uint32(MH_EXECUTE), "EXECUTE"},
	{uint32(MH_FVMLIB), "FVMLIB"},
	{uint32(MH_CORE), "CORE"},
	{uint32(MH_PRELOAD), "PRELOAD"},
	{uint32(MH_DYLIB), "DYLIB"},
	{uint32(MH_DYLINKER), "DYLINKER"},
	{uint32(MH_BUNDLE), "BUNDLE"},
	{uint32(MH_DYLIB_STUB), "DYLIB_STUB"},
	{uint32(MH_DSYM), "DSYM"},
	{uint32(MH_KEXT_BUNDLE), "KEXT_BUNDLE"},
	{uint32(MH_FILESET), "FILESET"},
	{uint32(MH_GPU_EXECUTE), "GPU_EXECUTE"},
	{uint32(MH_GPU_DYLIB), "GPU_DYLIB"},
}

func (t HeaderFileType) String() string   { return stringName(uint32(t), headerFileTypeStrings, false) }
func (t HeaderFileType) GoString() string { return stringName(uint32(t), headerFileTypeStrings, true) }

var headerFlagStrings = []IntName{
	{uint32(NoUndefs), "NOUNDEFS"},
	{uint32(IncrLink), "INCRLINK"},
	{uint32(DyldLink), "DYLDLINK"},
	{uint32(BindAtLoad), "BINDATLOAD"},
	{uint32(Prebound), "PREBOUND"},
	{uint32(SplitSegs), "SPLIT_SEGS"},
	{uint32(LazyInit), "LAZY_INIT"},
	{uint32(TwoLevel), "TWOLEVEL"},
	{uint32(ForceFlat), "FORCE_FLAT"},
	{uint32(NoMultiDefs), "NOMULTIDEFS"},
	{uint32(NoFixPrebinding), "NOFIXPREBINDING"},
	{uint32(Prebindable), "PREBINDABLE"},
	{uint32(AllModsBound), "ALLMODSBOUND"},
	{uint32(SubsectionsViaSymbols), "SUBSECTIONS_VIA_SYMBOLS"},
	{uint32(Canonical), "CANONICAL"},
	{uint32(WeakDefines), "WEAK_DEFINES"},
	{uint32(BindsToWeak), "BINDS_TO_WEAK"},
	{uint32(AllowStackExecution), "ALLOW_STACK_EXECUTION"},
	{uint32(RootSafe), "ROOT_SAFE"},
	{uint32(SetuidSafe), "SETUID_SAFE"},
	{uint32(NoReexportedDylibs), "NO_REEXPORTED_DYLIBS"},
	{uint32(PIE), "PIE"},
	{uint32(DeadStrippableDylib), "DEAD_STRIPPABLE_DYLIB"},
	{uint32(HasTLVDescriptors), "HAS_TLV_DESCRIPTORS"},
	{uint32(NoHeapExecution), "NO_HEAP_EXECUTION"},
	{uint32(AppExtensionSafe), "APP_EXTENSION_SAFE"},
	{uint32(NlistOutofsyncWithDyldinfo), "NLIST_OUTOFSYNC_WITH_DYLDINFO"},
	{uint32(SimSupport), "SIM_SUPPORT"},
	{uint32(DylibInCache), "DYLIB_IN_CACHE"},
}

func (f HeaderFlag) String() string {
	if f.None() {
		return "NONE"
	}
	return stringName(uint32(f), headerFlagStrings, false)
}
func (f HeaderFlag) GoString() string { return stringName(uint32(f), headerFlagStrings, true) }
