package testdata

// Records_Melbourne13 has 13 photos by 3 Flickr users around Melbourne.
// Rows are deliberately out of time order within each user.
// With an 8 hour gap it yields 6 trajectories, by record position:
//
//	[2 0 1] [5 3 4] [6] [11 10] [9 12] [7 8]
//
// and with the Melbourne box, 4 survive: [2 0 1] [5 3 4] [11 10] [7 8].
var Records_Melbourne13 = `Photo_ID, User_ID, Timestamp, Longitude, Latitude, Accuracy, URL, Marker(photo=0 video=1)
4257224959,26303188@N00,2010-01-09 09:39:19.0,145.314132,-37.765855,16,http://www.flickr.com/photos/26303188@N00/4257224959/,0
4258044588,26303188@N00,2010-01-09 10:08:50.0,145.314042,-37.765869,16,http://www.flickr.com/photos/26303188@N00/4258044588/,0
4257973354,26303188@N00,2010-01-09 09:36:11.0,145.314132,-37.765855,16,http://www.flickr.com/photos/26303188@N00/4257973354/,0
4307776599,26303188@N00,2010-01-26 09:59:49.0,144.978418,-37.821446,14,http://www.flickr.com/photos/26303188@N00/4307776599/,0
4308514792,26303188@N00,2010-01-26 11:35:44.0,144.978418,-37.821446,14,http://www.flickr.com/photos/26303188@N00/4308514792/,0
4308515366,26303188@N00,2010-01-26 08:34:17.0,144.978418,-37.821446,14,http://www.flickr.com/photos/26303188@N00/4308515366/,0
5222294050,26303188@N00,2010-12-01 10:13:27.0,145.565843,-37.767118,13,http://www.flickr.com/photos/26303188@N00/5222294050/,0
8246699008,89521819@N07,2012-11-23 23:50:37.0,145.011763,-37.768543,14,http://www.flickr.com/photos/89521819@N07/8246699008/,0
8246697974,89521819@N07,2012-11-23 23:54:11.0,145.011763,-37.768543,14,http://www.flickr.com/photos/89521819@N07/8246697974/,0
5548843638,52361622@N02,2011-03-18 22:36:54.0,145.387573,-37.581589,7,http://www.flickr.com/photos/52361622@N02/5548843638/,0
5548265115,52361622@N02,2011-03-18 09:27:31.0,144.997619,-37.827316,15,http://www.flickr.com/photos/52361622@N02/5548265115/,0
5548848742,52361622@N02,2011-03-18 08:10:26.0,144.997619,-37.827316,15,http://www.flickr.com/photos/52361622@N02/5548848742/,0
5548839426,52361622@N02,2011-03-18 22:45:19.0,145.387573,-37.581589,7,http://www.flickr.com/photos/52361622@N02/5548839426/,0
`

// Records_Melbourne13Trajectories is the 8 hour segmentation of Records_Melbourne13.
var Records_Melbourne13Trajectories = [][]int{{2, 0, 1}, {5, 3, 4}, {6}, {11, 10}, {9, 12}, {7, 8}}

// Records_Melbourne13Filtered is Records_Melbourne13Trajectories within the Melbourne box.
var Records_Melbourne13Filtered = [][]int{{2, 0, 1}, {5, 3, 4}, {11, 10}, {7, 8}}

// BigBox_YFCC4 is four tab-separated rows in the YFCC100M dump layout.
// Only the third is inside the Victoria box and the 2000-2015 window;
// the fourth is inside the box but carries a placeholder year 4501.
var BigBox_YFCC4 = "" +
	"7088065\t30302697@N00\tjhf\t2005-03-01 12:39:28.0\t1111467388\tSONY+CLIE\tGnome\tThis+gnome+just+appeared+three+stories+up+at+school+one+day.\t2005,bushschool,gnome,prank,washington\t\t-122.288368\t47.622562\t15\thttp://www.flickr.com/photos/30302697@N00/7088065/\thttp://farm1.staticflickr.com/8/7088065_65c9d45e09.jpg\tAttribution-NonCommercial License\thttp://creativecommons.org/licenses/by-nc/2.0/\t8\t1\t65c9d45e09\t65c9d45e09\tjpg\t0\n" +
	"343224206\t17143211@N00\tMDG26\t2006-12-31 23:00:32.0\t1167783247\tCanon+PowerShot+SD450\tTeam+Muppet+Show\t\t\t\t-73.458709\t41.394066\t11\thttp://www.flickr.com/photos/17143211@N00/343224206/\thttp://farm1.staticflickr.com/141/343224206_0f11b3c88a.jpg\tAttribution License\thttp://creativecommons.org/licenses/by/2.0/\t141\t1\t0f11b3c88a\t0f11b3c88a\tjpg\t0\n" +
	"6325727670\t61048402@N08\tIndigo+Skies+Photography\t2011-11-07 07:20:22.0\t1320751886\tNIKON+D90\tSunlight+through+the+morning+fog\tThis+scene+greeted+me+on+the+way+to+work+yesterday+morning.\taustralia,b%26w,beautiful,black+and+white,clouds,farm,flickr,fog,hills,morning\t\t144.87957\t-37.155665\t11\thttp://www.flickr.com/photos/61048402@N08/6325727670/\thttp://farm7.staticflickr.com/6097/6325727670_5192fe3be9.jpg\tAttribution-NonCommercial-NoDerivs License\thttp://creativecommons.org/licenses/by-nc-nd/2.0/\t6097\t7\t5192fe3be9\t8ed1387833\tjpg\t0\n" +
	"10642543105\t93003266@N04\tGSofV\t4501-01-01 00:00:00.0\t1383473251\tCouragent%2C+Inc.+Flip-Pal+100C\t0601+Young+man\tPhotographer%3A+Johnstone+O%27Shannessy%2C+3+Bourke+St%2C+Melbourne\talbum+g,carte+de+visite,gsv,melbourne,victoria\t\t144.972976\t-37.811378\t16\thttp://www.flickr.com/photos/93003266@N04/10642543105/\thttp://farm3.staticflickr.com/2823/10642543105_129f2fbe19.jpg\tAttribution License\thttp://creativecommons.org/licenses/by/2.0/\t2823\t3\t129f2fbe19\tc5f065a6a5\tjpg\t0\n"

// BigBox_YFCC4Selected is the record row selected from BigBox_YFCC4.
var BigBox_YFCC4Selected = "6325727670,61048402@N08,2011-11-07 07:20:22.0,144.87957,-37.155665,11,http://www.flickr.com/photos/61048402@N08/6325727670/,0\n"
